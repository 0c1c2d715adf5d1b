package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/middleware"
	"github.com/localnerve/nftune-store/internal/services"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/localnerve/nftune-store/internal/utils"
	"github.com/shopspring/decimal"
)

// NFTRequest is the body of POST /api/projects/:id/nfts
type NFTRequest struct {
	Title             string              `json:"title"`
	Description       *string             `json:"description,omitempty"`
	Price             decimal.NullDecimal `json:"price" swaggertype:"string" example:"0.25"`
	RoyaltyPercentage types.FlexInt       `json:"royaltyPercentage" swaggertype:"integer"`
	MetadataURI       string              `json:"metadataUri"`
}

// ListingRequest is the body of PUT /api/nfts/:id/listing
type ListingRequest struct {
	Listed bool `json:"listed"`
}

// GetProjectNFTs handles GET /api/projects/:id/nfts
// @Summary List the NFTs of a project
// @Tags NFTs
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} models.NFT
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/nfts [get]
func (h *Handlers) GetProjectNFTs(c *fiber.Ctx) error {
	nfts, err := h.Service.GetProjectNFTs(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getProjectNfts")
	}
	return utils.SuccessResponse(c, nfts, fiber.StatusOK)
}

// CreateNFT handles POST /api/projects/:id/nfts
// @Summary Create an NFT on a project
// @Description Owner or collaborator. Royalty must be between 0 and 50.
// @Tags NFTs
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body NFTRequest true "NFT"
// @Success 201 {object} models.NFT
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /projects/{id}/nfts [post]
func (h *Handlers) CreateNFT(c *fiber.Ctx) error {
	var body NFTRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	nft, err := h.Service.CreateNFT(c.UserContext(), middleware.Caller(c), c.Params("id"), services.NFTInput{
		Title:             body.Title,
		Description:       body.Description,
		Price:             body.Price,
		RoyaltyPercentage: body.RoyaltyPercentage.Int(),
		MetadataURI:       body.MetadataURI,
	})
	if err != nil {
		return failed(c, err, "createNft")
	}
	return utils.SuccessResponse(c, nft, fiber.StatusCreated)
}

// GetNFTs handles GET /api/nfts
// @Summary List all NFTs
// @Tags NFTs
// @Produce json
// @Success 200 {array} models.NFT
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /nfts [get]
func (h *Handlers) GetNFTs(c *fiber.Ctx) error {
	nfts, err := h.Service.GetNFTs(c.UserContext())
	if err != nil {
		return failed(c, err, "getNfts")
	}
	return utils.SuccessResponse(c, nfts, fiber.StatusOK)
}

// GetNFT handles GET /api/nfts/:id
// @Summary Get an NFT
// @Tags NFTs
// @Produce json
// @Param id path string true "NFT ID"
// @Success 200 {object} models.NFT
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /nfts/{id} [get]
func (h *Handlers) GetNFT(c *fiber.Ctx) error {
	nft, err := h.Service.GetNFT(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getNft")
	}
	return utils.SuccessResponse(c, nft, fiber.StatusOK)
}

// GetNFTDetail handles GET /api/nfts/:id/detail
// @Summary Get an NFT with its collaborators and revenue split
// @Description The project owner receives whatever contribution percentage the collaborators leave.
// @Tags NFTs
// @Produce json
// @Param id path string true "NFT ID"
// @Success 200 {object} services.NFTDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /nfts/{id}/detail [get]
func (h *Handlers) GetNFTDetail(c *fiber.Ctx) error {
	detail, err := h.Service.GetNFTDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return failed(c, err, "getNftDetail")
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// MintNFT handles POST /api/nfts/:id/mint
// @Summary Mint an NFT
// @Description Creator only, once. Sets the token id and contract and derives the marketplace URL.
// @Tags NFTs
// @Accept json
// @Produce json
// @Param id path string true "NFT ID"
// @Param body body services.MintInput true "On-chain coordinates"
// @Success 200 {object} models.NFT
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /nfts/{id}/mint [post]
func (h *Handlers) MintNFT(c *fiber.Ctx) error {
	var body services.MintInput
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	nft, err := h.Service.MintNFT(c.UserContext(), middleware.Caller(c), c.Params("id"), body)
	if err != nil {
		return failed(c, err, "mintNft")
	}
	return utils.SuccessResponse(c, nft, fiber.StatusOK)
}

// SetNFTListing handles PUT /api/nfts/:id/listing
// @Summary List or unlist a minted NFT
// @Tags NFTs
// @Accept json
// @Produce json
// @Param id path string true "NFT ID"
// @Param body body ListingRequest true "Listing flag"
// @Success 200 {object} models.NFT
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Security CookieAuth
// @Router /nfts/{id}/listing [put]
func (h *Handlers) SetNFTListing(c *fiber.Ctx) error {
	var body ListingRequest
	if err := c.BodyParser(&body); err != nil {
		return invalidInput(c, err)
	}

	nft, err := h.Service.SetNFTListing(c.UserContext(), middleware.Caller(c), c.Params("id"), body.Listed)
	if err != nil {
		return failed(c, err, "setNftListing")
	}
	return utils.SuccessResponse(c, nft, fiber.StatusOK)
}
