package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/utils"
)

// RegisterUser handles POST /api/users
// @Summary Register the caller
// @Description Create the user record for the authenticated caller. Each identity registers once.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Profile"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /users [post]
func (h *Handlers) RegisterUser(c *fiber.Ctx) error {
	var body services.RegisterInput
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	user, err := h.Service.RegisterUser(c.UserContext(), middleware.Caller(c), body)
	if err != nil {
		return failed(c, err, "registerUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// GetCurrentUser handles GET /api/users/me
// @Summary Get the caller's user record
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /users/me [get]
func (h *Handlers) GetCurrentUser(c *fiber.Ctx) error {
	user, err := h.Service.GetUser(c.UserContext(), middleware.Caller(c))
	if err != nil {
		return failed(c, err, "getUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// UpdateProfile handles PATCH /api/users/me
// @Summary Update the caller's profile
// @Description Only the fields present in the body change.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.ProfileUpdate true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /users/me [patch]
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var body services.ProfileUpdate
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	user, err := h.Service.UpdateProfile(c.UserContext(), middleware.Caller(c), body)
	if err != nil {
		return failed(c, err, "updateProfile")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
