// Package avatar assigns placeholder profile pictures to new users.
package avatar

import (
	"fmt"
	"math/rand"
)

// Provider is the pluggable avatar assignment strategy.
type Provider interface {
	Assign() string
}

const (
	defaultBaseURL = "https://avatar.iran.liara.run/public"
	defaultCount   = 100
)

// IndexedProvider picks a random index into a fixed external avatar set.
type IndexedProvider struct {
	baseURL string
	count   int
	intn    func(n int) int
}

func NewIndexedProvider() *IndexedProvider {
	// rand top-level functions are safe for concurrent handlers
	return &IndexedProvider{baseURL: defaultBaseURL, count: defaultCount, intn: rand.Intn}
}

func (p *IndexedProvider) Assign() string {
	return fmt.Sprintf("%s/%d.png", p.baseURL, p.intn(p.count)+1)
}

// Fixed always assigns the same URL.
type Fixed string

func (f Fixed) Assign() string {
	return string(f)
}
