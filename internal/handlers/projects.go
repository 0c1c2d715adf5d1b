package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/utils"
)

// ListProjects handles GET /api/projects
// @Summary List projects
// @Description All projects, oldest first.
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects [get]
func (h *Handlers) ListProjects(c *fiber.Ctx) error {
	projects, err := h.Service.ListProjects(c.UserContext())
	if err != nil {
		return failed(c, err, "listProjects")
	}
	return utils.SuccessResponse(c, projects, fiber.StatusOK)
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Description The caller becomes the owner.
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body services.ProjectInput true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects [post]
func (h *Handlers) CreateProject(c *fiber.Ctx) error {
	var body services.ProjectInput
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	project, err := h.Service.CreateProject(c.UserContext(), middleware.Caller(c), body)
	if err != nil {
		return failed(c, err, "createProject")
	}
	return utils.SuccessResponse(c, project, fiber.StatusCreated)
}

// GetProject handles GET /api/projects/:id
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id} [get]
func (h *Handlers) GetProject(c *fiber.Ctx) error {
	project, err := h.Service.GetProject(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getProject")
	}
	return utils.SuccessResponse(c, project, fiber.StatusOK)
}

// UpdateProject handles PATCH /api/projects/:id
// @Summary Update a project
// @Description Owner only. Only the fields present in the body change.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body services.ProjectUpdate true "Project fields"
// @Success 200 {object} models.Project
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects/{id} [patch]
func (h *Handlers) UpdateProject(c *fiber.Ctx) error {
	var body services.ProjectUpdate
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	project, err := h.Service.UpdateProject(c.UserContext(), middleware.Caller(c), c.Params("id"), body)
	if err != nil {
		return failed(c, err, "updateProject")
	}
	return utils.SuccessResponse(c, project, fiber.StatusOK)
}
