// store.go
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

// Package store is the durable keyed store. It holds one table per entity
// and runs caller functions inside database transactions, so a group of
// writes is applied entirely or not at all.
package store

import (
	"context"

	"github.com/localnerve/nftune-store/internal/models"
	"gorm.io/gorm"
)

// Foreign key columns served by secondary indexes.
const (
	ColumnProjectID    = "project_id"
	ColumnCollaborator = "collaborator"
	ColumnCreator      = "creator"
	ColumnOwner        = "owner"
)

// Store groups the entity tables over one database handle.
type Store struct {
	db *gorm.DB

	Users          Table[models.User]
	Projects       Table[models.Project]
	Tracks         Table[models.Track]
	NFTs           Table[models.NFT]
	Collaborations Table[models.Collaboration]
}

// New wraps a migrated database handle.
func New(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Users:          NewTable[models.User]("created_at, id"),
		Projects:       NewTable[models.Project]("created_at, id"),
		Tracks:         NewTable[models.Track]("created_at, id"),
		NFTs:           NewTable[models.NFT]("created_at, id"),
		Collaborations: NewTable[models.Collaboration]("joined_at, id"),
	}
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// View runs fn against one consistent snapshot. fn must only read.
func (s *Store) View(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Update runs fn in a transaction that commits when fn returns nil and
// rolls back otherwise. A commit is durable once Update returns.
func (s *Store) Update(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
