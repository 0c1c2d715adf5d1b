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

// TrackInput describes a new track. Duration is in seconds.
type TrackInput struct {
	Name       string `json:"name"`
	ContentRef string `json:"contentRef"`
	Duration   uint64 `json:"duration"`
}

// AddTrack creates a Draft track on a project and appends it to the
// project's track list. The owner and collaborators may add tracks.
func (s *Service) AddTrack(ctx context.Context, caller identity.Identity, projectID string, in TrackInput) (*models.Track, error) {
	var track *models.Track
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		project, err := s.project(tx, projectID, true)
		if err != nil {
			return err
		}
		if !isMember(project, caller) {
			return types.NewError(types.KindForbidden, "only the owner or a collaborator may add tracks to project %s", projectID)
		}

		name := strings.TrimSpace(in.Name)
		if name == "" {
			return types.NewError(types.KindInvalidArgument, "track name is required")
		}

		now := s.timestamp()
		track = &models.Track{
			ID:         s.newID(),
			ProjectID:  project.ID,
			Name:       name,
			ContentRef: in.ContentRef,
			Duration:   in.Duration,
			Status:     models.TrackDraft,
			CreatedAt:  now,
		}
		if err := s.store.Tracks.Put(tx, track); err != nil {
			return err
		}

		project.Tracks = append(project.Tracks, track.ID)
		project.UpdatedAt = now
		return s.store.Projects.Put(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return track, nil
}

// GetTrack returns one track.
func (s *Service) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	var track *models.Track
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		track, err = s.store.Tracks.Get(tx, id)
		return notFound(err, "track %s not found", id)
	})
	if err != nil {
		return nil, err
	}
	return track, nil
}

// GetProjectTracks returns the tracks of a project, oldest first. An
// unknown project has no tracks.
func (s *Service) GetProjectTracks(ctx context.Context, projectID string) ([]models.Track, error) {
	var tracks []models.Track
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		tracks, err = s.store.Tracks.ListBy(tx, store.ColumnProjectID, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

// SetTrackStatus moves a track forward through
// Draft, Recording, Mixing and Completed. Stages may be skipped but never
// revisited. The owner and collaborators may change status.
func (s *Service) SetTrackStatus(ctx context.Context, caller identity.Identity, trackID string, status models.TrackStatus) (*models.Track, error) {
	var track *models.Track
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		var err error
		track, err = s.store.Tracks.GetForUpdate(tx, trackID)
		if err != nil {
			return notFound(err, "track %s not found", trackID)
		}
		project, err := s.project(tx, track.ProjectID, false)
		if err != nil {
			return err
		}
		if !isMember(project, caller) {
			return types.NewError(types.KindForbidden, "only the owner or a collaborator may change track %s", trackID)
		}
		if err := checkTrackTransition(track.Status, status); err != nil {
			return err
		}

		track.Status = status
		return s.store.Tracks.Put(tx, track)
	})
	if err != nil {
		return nil, err
	}
	return track, nil
}
