package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/localnerve/nftune-store/internal/utils"
)

// CollaboratorRequest is the body of POST /api/projects/:id/collaborators
type CollaboratorRequest struct {
	Collaborator           string        `json:"collaborator"`
	ContributionPercentage types.FlexInt `json:"contributionPercentage" swaggertype:"integer"`
	Role                   string        `json:"role"`
}

// GetProjectCollaborators handles GET /api/projects/:id/collaborators
// @Summary List the collaborations of a project
// @Tags Collaborators
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.Collaboration
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/collaborators [get]
func (h *Handlers) GetProjectCollaborators(c *fiber.Ctx) error {
	collabs, err := h.Service.GetProjectCollaborators(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getProjectCollaborators")
	}
	return utils.SuccessResponse(c, collabs, fiber.StatusOK)
}

// AddCollaborator handles POST /api/projects/:id/collaborators
// @Summary Add a collaborator to a project
// @Description Owner only. Contribution must be between 0 and 100.
// @Tags Collaborators
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body CollaboratorRequest true "Collaboration"
// @Success 201 {object} models.Collaboration
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects/{id}/collaborators [post]
func (h *Handlers) AddCollaborator(c *fiber.Ctx) error {
	var body CollaboratorRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	collab, err := h.Service.AddCollaborator(c.UserContext(), middleware.Caller(c), c.Params("id"), services.CollaboratorInput{
		Collaborator:           identity.Identity(body.Collaborator),
		ContributionPercentage: body.ContributionPercentage.Int(),
		Role:                   body.Role,
	})
	if err != nil {
		return failed(c, err, "addCollaborator")
	}
	return utils.SuccessResponse(c, collab, fiber.StatusCreated)
}

// RemoveCollaborator handles DELETE /api/projects/:id/collaborators/:collaborationId
// @Summary Remove a collaborator from a project
// @Description Owner only. The collaboration must belong to the project.
// @Tags Collaborators
// @Produce json
// @Param id path string true "Project ID"
// @Param collaborationId path string true "Collaboration ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects/{id}/collaborators/{collaborationId} [delete]
func (h *Handlers) RemoveCollaborator(c *fiber.Ctx) error {
	err := h.Service.RemoveCollaborator(c.UserContext(), middleware.Caller(c), c.Params("id"), c.Params("collaborationId"))
	if err != nil {
		return failed(c, err, "removeCollaborator")
	}
	return utils.MutationSuccessResponse(c, 1)
}
