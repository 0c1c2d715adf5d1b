package services

import (
	"context"
	"strings"

	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"gorm.io/gorm"
)

// CollaboratorInput describes a collaboration to add.
type CollaboratorInput struct {
	Collaborator           identity.Identity `json:"collaborator"`
	ContributionPercentage int               `json:"contributionPercentage"`
	Role                   string            `json:"role"`
}

// AddCollaborator grants an identity contribution rights on a project and
// appends it to the project's collaborator list. Only the owner may add
// collaborators.
func (s *Service) AddCollaborator(ctx context.Context, caller identity.Identity, projectID string, in CollaboratorInput) (*models.Collaboration, error) {
	var collab *models.Collaboration
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		project, err := s.project(tx, projectID, true)
		if err != nil {
			return err
		}
		if project.Owner != caller.String() {
			return types.NewError(types.KindForbidden, "only the project owner may add collaborators to project %s", projectID)
		}
		if err := checkContribution(in.ContributionPercentage); err != nil {
			return err
		}

		who := identity.Identity(strings.TrimSpace(in.Collaborator.String()))
		if who.IsAnonymous() {
			return types.NewError(types.KindInvalidArgument, "collaborator identity is required")
		}
		if who.String() == project.Owner {
			return types.NewError(types.KindInvalidArgument, "the project owner cannot be added as a collaborator")
		}
		if project.Collaborators.Contains(who.String()) {
			return types.NewError(types.KindConflict, "%s already collaborates on project %s", who, projectID)
		}

		if s.contributionCeiling {
			existing, err := s.store.Collaborations.ListBy(tx, store.ColumnProjectID, projectID)
			if err != nil {
				return err
			}
			if err := checkContributionCeiling(existing, in.ContributionPercentage); err != nil {
				return err
			}
		}

		now := s.timestamp()
		collab = &models.Collaboration{
			ID:                     s.newID(),
			ProjectID:              project.ID,
			Collaborator:           who.String(),
			ContributionPercentage: in.ContributionPercentage,
			Role:                   in.Role,
			JoinedAt:               now,
		}
		if err := s.store.Collaborations.Put(tx, collab); err != nil {
			return err
		}

		project.Collaborators = append(project.Collaborators, who.String())
		project.UpdatedAt = now
		return s.store.Projects.Put(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return collab, nil
}

// GetProjectCollaborators returns the collaborations of a project in the
// order they were added.
func (s *Service) GetProjectCollaborators(ctx context.Context, projectID string) ([]models.Collaboration, error) {
	var collabs []models.Collaboration
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		collabs, err = s.store.Collaborations.ListBy(tx, store.ColumnProjectID, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return collabs, nil
}

// RemoveCollaborator deletes a collaboration and drops its identity from
// the project's collaborator list. Only the owner may remove collaborators.
func (s *Service) RemoveCollaborator(ctx context.Context, caller identity.Identity, projectID, collaborationID string) error {
	return s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		project, err := s.project(tx, projectID, true)
		if err != nil {
			return err
		}
		if project.Owner != caller.String() {
			return types.NewError(types.KindForbidden, "only the project owner may remove collaborators from project %s", projectID)
		}

		collab, err := s.store.Collaborations.Get(tx, collaborationID)
		if err != nil {
			return notFound(err, "collaboration %s not found", collaborationID)
		}
		if collab.ProjectID != project.ID {
			return types.NewError(types.KindInvalidArgument, "collaboration %s does not belong to project %s", collaborationID, projectID)
		}

		project.Collaborators = project.Collaborators.Without(collab.Collaborator)
		project.UpdatedAt = s.timestamp()
		if err := s.store.Projects.Put(tx, project); err != nil {
			return err
		}
		return s.store.Collaborations.Delete(tx, collab.ID)
	})
}
