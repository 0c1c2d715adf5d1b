// common.go
//
// A durable, authorization-gated store for collaborative music projects and their NFTs
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

package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/logger"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/localnerve/nftune-store/internal/utils"
)

// Handlers bundles the route handlers over one Service.
type Handlers struct {
	Service *services.Service
}

// RegisterRoutes mounts the API on router, which is expected to sit behind
// middleware.Identify.
func RegisterRoutes(router fiber.Router, h *Handlers) {
	router.Post("/users", h.RegisterUser)
	router.Get("/users/me", h.GetCurrentUser)
	router.Patch("/users/me", h.UpdateProfile)

	router.Get("/projects", h.ListProjects)
	router.Post("/projects", h.CreateProject)
	router.Get("/projects/:id", h.GetProject)
	router.Patch("/projects/:id", h.UpdateProject)

	router.Get("/projects/:id/tracks", h.GetProjectTracks)
	router.Post("/projects/:id/tracks", h.AddTrack)
	router.Get("/tracks/:id", h.GetTrack)
	router.Put("/tracks/:id/status", h.SetTrackStatus)

	router.Get("/projects/:id/nfts", h.GetProjectNFTs)
	router.Post("/projects/:id/nfts", h.CreateNFT)
	router.Get("/nfts", h.GetNFTs)
	router.Get("/nfts/:id", h.GetNFT)
	router.Get("/nfts/:id/detail", h.GetNFTDetail)
	router.Post("/nfts/:id/mint", h.MintNFT)
	router.Put("/nfts/:id/listing", h.SetNFTListing)

	router.Get("/projects/:id/collaborators", h.GetProjectCollaborators)
	router.Post("/projects/:id/collaborators", h.AddCollaborator)
	router.Delete("/projects/:id/collaborators/:collaborationId", h.RemoveCollaborator)
}

// invalidInput answers a request whose body could not be parsed.
func invalidInput(c *fiber.Ctx, err error) error {
	return utils.ErrorResponse(c, "Invalid input: "+err.Error(), fiber.StatusBadRequest, "validation.input")
}

// failed answers with the status of a domain error, logging anything that
// is not one.
func failed(c *fiber.Ctx, err error, op string) error {
	if types.KindOf(err) == "" {
		logger.Error("operation failed",
			logger.String("op", op),
			logger.String("caller", middleware.Caller(c).String()),
			logger.ErrorField(err),
		)
	}
	return utils.DomainErrorResponse(c, err, op)
}

// ErrorHandler handles errors returned up the middleware chain
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var ce *types.CustomError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ce):
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			logger.String("url", c.OriginalURL()),
			logger.ErrorField(err),
		)
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// NotFound answers requests that matched no route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponseStruct{
		Status:    fiber.StatusNotFound,
		Message:   "[404] Resource Not Found",
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
	})
}
