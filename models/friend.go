package models

import "time"

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// FriendEdge is the single canonical record for an unordered user pair.
// UserLo < UserHi always; RequesterID is one of the two and marks who sent
// the request. The unique key on (user_lo, user_hi) makes a second edge for
// the same pair impossible regardless of direction.
type FriendEdge struct {
	ID          string       `json:"id"`
	UserLo      string       `json:"-"`
	UserHi      string       `json:"-"`
	RequesterID string       `json:"requester_id"`
	Status      FriendStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FriendRequestWithUser pairs an edge with the profile of whichever side the
// caller is looking at (the requester for incoming, the recipient for
// outgoing and accepted feeds).
type FriendRequestWithUser struct {
	FriendEdge
	User UserResponse `json:"user"`
}

// NormalizePair orders two user ids into the canonical (lo, hi) form used by
// the friend_edges table.
func NormalizePair(a, b string) (lo, hi string) {
	if a < b {
		return a, b
	}
	return b, a
}
