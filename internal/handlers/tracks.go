package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/localnerve/nftune-store/internal/utils"
)

// TrackRequest is the body of POST /api/projects/:id/tracks
type TrackRequest struct {
	Name       string           `json:"name"`
	ContentRef string           `json:"contentRef"`
	Duration   types.FlexUint64 `json:"duration" swaggertype:"integer"`
}

// TrackStatusRequest is the body of PUT /api/tracks/:id/status
type TrackStatusRequest struct {
	Status models.TrackStatus `json:"status" enums:"Draft,Recording,Mixing,Completed"`
}

// GetProjectTracks handles GET /api/projects/:id/tracks
// @Summary List the tracks of a project
// @Tags Tracks
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Track
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/tracks [get]
func (h *Handlers) GetProjectTracks(c *fiber.Ctx) error {
	tracks, err := h.Service.GetProjectTracks(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getProjectTracks")
	}
	return utils.SuccessResponse(c, tracks, fiber.StatusOK)
}

// AddTrack handles POST /api/projects/:id/tracks
// @Summary Add a track to a project
// @Description Owner or collaborator. The track starts as Draft.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body TrackRequest true "Track"
// @Success 201 {object} models.Track
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects/{id}/tracks [post]
func (h *Handlers) AddTrack(c *fiber.Ctx) error {
	var body TrackRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	track, err := h.Service.AddTrack(c.UserContext(), middleware.Caller(c), c.Params("id"), services.TrackInput{
		Name:       body.Name,
		ContentRef: body.ContentRef,
		Duration:   body.Duration.Uint64(),
	})
	if err != nil {
		return failed(c, err, "addTrack")
	}
	return utils.SuccessResponse(c, track, fiber.StatusCreated)
}

// GetTrack handles GET /api/tracks/:id
// @Summary Get a track
// @Tags Tracks
// @Produce json
// @Param id path string true "Track ID"
// @Success 200 {object} models.Track
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tracks/{id} [get]
func (h *Handlers) GetTrack(c *fiber.Ctx) error {
	track, err := h.Service.GetTrack(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getTrack")
	}
	return utils.SuccessResponse(c, track, fiber.StatusOK)
}

// SetTrackStatus handles PUT /api/tracks/:id/status
// @Summary Advance a track's status
// @Description Owner or collaborator. Draft, Recording, Mixing, Completed; forward only.
// @Tags Tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Param body body TrackStatusRequest true "New status"
// @Success 200 {object} models.Track
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /tracks/{id}/status [put]
func (h *Handlers) SetTrackStatus(c *fiber.Ctx) error {
	var body TrackStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	track, err := h.Service.SetTrackStatus(c.UserContext(), middleware.Caller(c), c.Params("id"), body.Status)
	if err != nil {
		return failed(c, err, "setTrackStatus")
	}
	return utils.SuccessResponse(c, track, fiber.StatusOK)
}
