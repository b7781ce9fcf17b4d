// Package session persists the two pieces of client state that survive a
// restart: the bearer token and the cached user profile. Access is
// synchronous and last-write-wins; concurrent processes sharing one storage
// dir are not coordinated.
package session

import (
	"github.com/eros-saude/eros-go/model"
)

// Store holds the authenticated session. Implementations must tolerate
// Clear being called on an already-empty store.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	User() (*model.User, bool)
	SetUser(u *model.User) error
	Clear() error
}
