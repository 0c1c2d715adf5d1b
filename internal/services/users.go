package services

import (
	"context"
	"errors"
	"strings"

	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"gorm.io/gorm"
)

// RegisterInput carries the profile for a first registration.
type RegisterInput struct {
	Name  *string `json:"name,omitempty"`
	Email string  `json:"email"`
}

// ProfileUpdate carries the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// RegisterUser creates the User record for caller. Each identity registers
// once.
func (s *Service) RegisterUser(ctx context.Context, caller identity.Identity, in RegisterInput) (*models.User, error) {
	if caller.IsAnonymous() {
		return nil, types.NewError(types.KindUnauthenticated, "authentication required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, types.NewError(types.KindInvalidArgument, "email is required")
	}

	var user *models.User
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		exists, err := s.store.Users.Exists(tx, caller.String())
		if err != nil {
			return err
		}
		if exists {
			return types.NewError(types.KindConflict, "user %s is already registered", caller)
		}

		user = &models.User{
			ID:        caller.String(),
			Name:      in.Name,
			Email:     email,
			CreatedAt: s.timestamp(),
		}
		return s.store.Users.Put(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns the caller's own record.
func (s *Service) GetUser(ctx context.Context, caller identity.Identity) (*models.User, error) {
	if caller.IsAnonymous() {
		return nil, types.NewError(types.KindUnauthenticated, "authentication required")
	}

	var user *models.User
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = s.store.Users.Get(tx, caller.String())
		if err != nil {
			return notRegistered(err, caller)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the caller's mutable profile fields. The identity
// itself never changes.
func (s *Service) UpdateProfile(ctx context.Context, caller identity.Identity, in ProfileUpdate) (*models.User, error) {
	var user *models.User
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		var err error
		user, err = s.store.Users.Get(tx, caller.String())
		if err != nil {
			return notRegistered(err, caller)
		}

		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			if email == "" {
				return types.NewError(types.KindInvalidArgument, "email cannot be empty")
			}
			user.Email = email
		}
		if in.Name != nil {
			user.Name = in.Name
		}
		if in.AvatarURL != nil {
			user.AvatarURL = in.AvatarURL
		}

		return s.store.Users.Put(tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func notRegistered(err error, caller identity.Identity) error {
	if errors.Is(err, store.ErrNotFound) {
		return types.NewError(types.KindNotRegistered, "user %s is not registered", caller)
	}
	return err
}
