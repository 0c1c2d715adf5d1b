// Package identity is the gate every mutating operation passes first. It
// turns the caller identity handed in by the transport boundary into a
// registered user, or fails.
package identity

import (
	"errors"

	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"gorm.io/gorm"
)

// Identity is the stable token the auth boundary assigns to a caller.
type Identity string

// Anonymous stands for a caller with no verified credentials.
const Anonymous Identity = "anonymous"

// IsAnonymous reports whether id carries no verified caller. The empty
// identity counts as anonymous.
func (id Identity) IsAnonymous() bool {
	return id == "" || id == Anonymous
}

func (id Identity) String() string {
	return string(id)
}

// RequireAuthenticated checks that caller is not anonymous and has a User
// record. It only reads.
func RequireAuthenticated(tx *gorm.DB, users store.Table[models.User], caller Identity) (Identity, error) {
	if caller.IsAnonymous() {
		return "", types.NewError(types.KindUnauthenticated, "authentication required")
	}

	ok, err := users.Exists(tx, caller.String())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", types.NewError(types.KindNotRegistered, "user %s is not registered", caller)
	}

	return caller, nil
}

// IsGateError reports whether err came from the gate rather than from the
// operation behind it.
func IsGateError(err error) bool {
	return errors.Is(err, types.ErrUnauthenticated) || errors.Is(err, types.ErrNotRegistered)
}
