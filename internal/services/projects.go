package services

import (
	"context"
	"strings"

	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/types"
	"gorm.io/gorm"
)

// ProjectInput describes a new project.
type ProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ProjectUpdate carries the project fields to change. Nil fields are kept.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProject creates a project owned by caller.
func (s *Service) CreateProject(ctx context.Context, caller identity.Identity, in ProjectInput) (*models.Project, error) {
	var project *models.Project
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		owner, err := s.gate(tx, caller)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return types.NewError(types.KindInvalidArgument, "project name is required")
		}

		now := s.timestamp()
		project = &models.Project{
			ID:            s.newID(),
			Owner:         owner.String(),
			Name:          name,
			Description:   in.Description,
			Collaborators: models.IDList{},
			Tracks:        models.IDList{},
			NFTs:          models.IDList{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return s.store.Projects.Put(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns one project.
func (s *Service) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project *models.Project
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		project, err = s.project(tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns every project, oldest first.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		projects, err = s.store.Projects.List(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies the provided fields. Only the owner may update.
func (s *Service) UpdateProject(ctx context.Context, caller identity.Identity, id string, in ProjectUpdate) (*models.Project, error) {
	var project *models.Project
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		var err error
		project, err = s.project(tx, id, true)
		if err != nil {
			return err
		}
		if project.Owner != caller.String() {
			return types.NewError(types.KindForbidden, "only the project owner may update project %s", id)
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return types.NewError(types.KindInvalidArgument, "project name cannot be empty")
			}
			project.Name = name
		}
		if in.Description != nil {
			project.Description = in.Description
		}
		project.UpdatedAt = s.timestamp()

		return s.store.Projects.Put(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
