// Package chat bridges local user identities to the external chat provider.
// Messaging, channels and presence live entirely on the provider side; this
// package only mirrors display identity and mints connection tokens.
package chat

import (
	"context"
	"time"

	stream "github.com/GetStream/stream-chat-go/v6"
)

// Identity is the slice of a user profile mirrored to the chat provider.
type Identity struct {
	ID    string
	Name  string
	Image string
}

// Upserter pushes an identity to the provider. The operation must be
// idempotent: create on first call, update afterwards.
type Upserter interface {
	UpsertIdentity(ctx context.Context, id Identity) error
}

// Client wraps the Stream Chat SDK.
type Client struct {
	sc *stream.Client
}

func NewClient(apiKey, apiSecret string) (*Client, error) {
	sc, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Client{sc: sc}, nil
}

func (c *Client) UpsertIdentity(ctx context.Context, id Identity) error {
	_, err := c.sc.UpsertUser(ctx, &stream.User{
		ID:    id.ID,
		Name:  id.Name,
		Image: id.Image,
	})
	return err
}

// TokenFor mints the provider token the frontend uses to connect as userID.
func (c *Client) TokenFor(userID string) (string, error) {
	return c.sc.CreateToken(userID, time.Time{})
}
