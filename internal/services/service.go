// service.go
//
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of nftune-store.
// nftune-store is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// nftune-store is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with nftune-store.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package services holds the domain operations. Each operation runs in one
// store transaction, passes the identity gate first when it mutates, and
// performs every check before its first write.
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"gorm.io/gorm"
)

// DefaultMarketplaceBase prefixes the marketplace URL of a minted NFT.
const DefaultMarketplaceBase = "https://opensea.io/assets/ethereum"

// Service runs domain operations against a store.
type Service struct {
	store               *store.Store
	now                 func() time.Time
	newID               func() string
	marketplaceBase     string
	contributionCeiling bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator replaces the uuid generator used for new entity ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithMarketplaceBase sets the URL prefix for minted NFTs.
func WithMarketplaceBase(base string) Option {
	return func(s *Service) {
		if base = strings.TrimRight(base, "/"); base != "" {
			s.marketplaceBase = base
		}
	}
}

// WithContributionCeiling turns the project-wide limit of 100 percent
// across all collaborations on or off. It is on by default.
func WithContributionCeiling(enabled bool) Option {
	return func(s *Service) {
		s.contributionCeiling = enabled
	}
}

// New returns a Service over st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:               st,
		now:                 time.Now,
		newID:               uuid.NewString,
		marketplaceBase:     DefaultMarketplaceBase,
		contributionCeiling: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store {
	return s.store
}

// timestamp is the current time at the precision every backend keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Service) gate(tx *gorm.DB, caller identity.Identity) (identity.Identity, error) {
	return identity.RequireAuthenticated(tx, s.store.Users, caller)
}

// project loads a project, locking its row when the transaction writes.
func (s *Service) project(tx *gorm.DB, id string, forUpdate bool) (*models.Project, error) {
	var (
		p   *models.Project
		err error
	)
	if forUpdate {
		p, err = s.store.Projects.GetForUpdate(tx, id)
	} else {
		p, err = s.store.Projects.Get(tx, id)
	}
	return p, notFound(err, "project %s not found", id)
}

// notFound turns store.ErrNotFound into a NotFound domain error and passes
// every other error through.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, store.ErrNotFound) {
		return types.NewError(types.KindNotFound, format, args...)
	}
	return err
}

// isMember reports whether caller owns p or is one of its collaborators.
func isMember(p *models.Project, caller identity.Identity) bool {
	return p.Owner == caller.String() || p.Collaborators.Contains(caller.String())
}
