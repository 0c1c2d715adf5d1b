package services

import (
	"context"
	"strings"

	"github.com/localnerve/nftune-store/internal/identity"
	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/store"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NFTInput describes a new, unminted NFT.
type NFTInput struct {
	Title             string              `json:"title"`
	Description       *string             `json:"description,omitempty"`
	Price             decimal.NullDecimal `json:"price"`
	RoyaltyPercentage int                 `json:"royaltyPercentage"`
	MetadataURI       string              `json:"metadataUri"`
}

// MintInput carries the on-chain coordinates assigned by minting.
type MintInput struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
}

// CreateNFT creates an unminted, unlisted NFT on a project with caller as
// creator. The owner and collaborators may create NFTs.
func (s *Service) CreateNFT(ctx context.Context, caller identity.Identity, projectID string, in NFTInput) (*models.NFT, error) {
	var nft *models.NFT
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		creator, err := s.gate(tx, caller)
		if err != nil {
			return err
		}

		project, err := s.project(tx, projectID, true)
		if err != nil {
			return err
		}
		if !isMember(project, caller) {
			return types.NewError(types.KindForbidden, "only the owner or a collaborator may create nfts on project %s", projectID)
		}
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return types.NewError(types.KindInvalidArgument, "nft title is required")
		}
		if err := checkRoyalty(in.RoyaltyPercentage); err != nil {
			return err
		}
		if in.Price.Valid && in.Price.Decimal.IsNegative() {
			return types.NewError(types.KindInvalidArgument, "price cannot be negative")
		}

		now := s.timestamp()
		nft = &models.NFT{
			ID:                s.newID(),
			ProjectID:         project.ID,
			Creator:           creator.String(),
			Title:             title,
			Description:       in.Description,
			Price:             models.NewPrice(in.Price),
			RoyaltyPercentage: in.RoyaltyPercentage,
			MetadataURI:       in.MetadataURI,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := s.store.NFTs.Put(tx, nft); err != nil {
			return err
		}

		project.NFTs = append(project.NFTs, nft.ID)
		project.UpdatedAt = now
		return s.store.Projects.Put(tx, project)
	})
	if err != nil {
		return nil, err
	}
	return nft, nil
}

// NFTDetail is an NFT with the collaborations of its project and the
// revenue split they imply.
type NFTDetail struct {
	NFT           models.NFT             `json:"nft"`
	Collaborators []models.Collaboration `json:"collaborators"`
	RevenueShares []RevenueShare         `json:"revenueShares"`
}

// GetNFTDetail returns an NFT together with its project's collaborations
// and the split of its price between them and the project owner.
func (s *Service) GetNFTDetail(ctx context.Context, id string) (*NFTDetail, error) {
	var detail *NFTDetail
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		nft, err := s.store.NFTs.Get(tx, id)
		if err != nil {
			return notFound(err, "nft %s not found", id)
		}
		project, err := s.project(tx, nft.ProjectID, false)
		if err != nil {
			return err
		}
		collabs, err := s.store.Collaborations.ListBy(tx, store.ColumnProjectID, project.ID)
		if err != nil {
			return err
		}

		detail = &NFTDetail{
			NFT:           *nft,
			Collaborators: collabs,
			RevenueShares: revenueShares(project.Owner, nft.Price.NullDecimal, collabs),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// MintNFT records the token id and contract of an NFT and derives its
// marketplace URL. Only the creator may mint, and only once.
func (s *Service) MintNFT(ctx context.Context, caller identity.Identity, id string, in MintInput) (*models.NFT, error) {
	var nft *models.NFT
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		var err error
		nft, err = s.store.NFTs.GetForUpdate(tx, id)
		if err != nil {
			return notFound(err, "nft %s not found", id)
		}
		if nft.Creator != caller.String() {
			return types.NewError(types.KindForbidden, "only the creator may mint nft %s", id)
		}
		if err := checkMintable(nft); err != nil {
			return err
		}

		token := strings.TrimSpace(in.TokenID)
		contract := strings.TrimSpace(in.ContractAddress)
		if token == "" || contract == "" {
			return types.NewError(types.KindInvalidArgument, "token id and contract address are both required")
		}

		url := marketplaceURL(s.marketplaceBase, contract, token)
		nft.TokenID = &token
		nft.ContractAddress = &contract
		nft.IsMinted = true
		nft.MarketplaceURL = &url
		nft.UpdatedAt = s.timestamp()

		return s.store.NFTs.Put(tx, nft)
	})
	if err != nil {
		return nil, err
	}
	return nft, nil
}

// SetNFTListing shows or hides a minted NFT on the marketplace. Only the
// creator may change the listing.
func (s *Service) SetNFTListing(ctx context.Context, caller identity.Identity, id string, listed bool) (*models.NFT, error) {
	var nft *models.NFT
	err := s.store.Update(ctx, func(tx *gorm.DB) error {
		if _, err := s.gate(tx, caller); err != nil {
			return err
		}

		var err error
		nft, err = s.store.NFTs.GetForUpdate(tx, id)
		if err != nil {
			return notFound(err, "nft %s not found", id)
		}
		if nft.Creator != caller.String() {
			return types.NewError(types.KindForbidden, "only the creator may list nft %s", id)
		}
		if err := checkListable(nft, listed); err != nil {
			return err
		}

		nft.IsListed = listed
		nft.UpdatedAt = s.timestamp()
		return s.store.NFTs.Put(tx, nft)
	})
	if err != nil {
		return nil, err
	}
	return nft, nil
}

// GetNFT returns one NFT.
func (s *Service) GetNFT(ctx context.Context, id string) (*models.NFT, error) {
	var nft *models.NFT
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		nft, err = s.store.NFTs.Get(tx, id)
		return notFound(err, "nft %s not found", id)
	})
	if err != nil {
		return nil, err
	}
	return nft, nil
}

// GetNFTs returns every NFT, oldest first.
func (s *Service) GetNFTs(ctx context.Context) ([]models.NFT, error) {
	var nfts []models.NFT
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		nfts, err = s.store.NFTs.List(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nfts, nil
}

// GetProjectNFTs returns the NFTs of a project, oldest first.
func (s *Service) GetProjectNFTs(ctx context.Context, projectID string) ([]models.NFT, error) {
	var nfts []models.NFT
	err := s.store.View(ctx, func(tx *gorm.DB) error {
		var err error
		nfts, err = s.store.NFTs.ListBy(tx, store.ColumnProjectID, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nfts, nil
}
