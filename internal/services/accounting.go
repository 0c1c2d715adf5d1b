package services

import (
	"fmt"

	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/shopspring/decimal"
)

// OwnerRole names the owner's entry in a revenue split.
const OwnerRole = "Owner"

// RevenueShare is one recipient's cut of an NFT's sale price.
type RevenueShare struct {
	Recipient  string              `json:"recipient"`
	Role       string              `json:"role"`
	Percentage int                 `json:"percentage"`
	Amount     decimal.NullDecimal `json:"amount" swaggertype:"string"`
}

// Percentage bounds, inclusive.
const (
	MaxRoyaltyPercentage      = 50
	MaxContributionPercentage = 100
)

func checkRoyalty(pct int) error {
	if pct < 0 || pct > MaxRoyaltyPercentage {
		return types.NewError(types.KindInvalidArgument,
			"royalty percentage must be between 0 and %d, got %d", MaxRoyaltyPercentage, pct)
	}
	return nil
}

func checkContribution(pct int) error {
	if pct < 0 || pct > MaxContributionPercentage {
		return types.NewError(types.KindInvalidArgument,
			"contribution percentage must be between 0 and %d, got %d", MaxContributionPercentage, pct)
	}
	return nil
}

// checkContributionCeiling rejects a new share that would take the
// project's total across existing collaborations past 100.
func checkContributionCeiling(existing []models.Collaboration, pct int) error {
	total := pct
	for _, c := range existing {
		total += c.ContributionPercentage
	}
	if total > MaxContributionPercentage {
		return types.NewError(types.KindInvalidArgument,
			"total contribution would be %d%%, limit is %d%%", total, MaxContributionPercentage)
	}
	return nil
}

// checkMintable allows exactly one mint per NFT.
func checkMintable(n *models.NFT) error {
	if n.IsMinted {
		return types.NewError(types.KindConflict, "nft %s is already minted", n.ID)
	}
	return nil
}

// checkListable only lets minted NFTs onto the marketplace. Unlisting is
// always allowed.
func checkListable(n *models.NFT, listed bool) error {
	if listed && !n.IsMinted {
		return types.NewError(types.KindConflict, "nft %s must be minted before it is listed", n.ID)
	}
	return nil
}

// checkTrackTransition allows a track to move forward only, possibly
// skipping stages.
func checkTrackTransition(from, to models.TrackStatus) error {
	if !to.Valid() {
		return types.NewError(types.KindInvalidArgument, "unknown track status %q", to)
	}
	if !from.Precedes(to) {
		return types.NewError(types.KindConflict, "track status cannot move from %s to %s", from, to)
	}
	return nil
}

// marketplaceURL is derived from the contract and token alone, so a given
// mint always yields the same URL.
func marketplaceURL(base, contract, token string) string {
	return fmt.Sprintf("%s/%s/%s", base, contract, token)
}

// revenueShares splits price by contribution: each collaboration takes its
// percentage and the owner keeps the remainder, never below zero. Amounts
// are exact and absent when the NFT has no price.
func revenueShares(owner string, price decimal.NullDecimal, collabs []models.Collaboration) []RevenueShare {
	amount := func(pct int) decimal.NullDecimal {
		if !price.Valid {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(price.Decimal.Mul(decimal.NewFromInt(int64(pct))).Shift(-2))
	}

	shares := make([]RevenueShare, 0, len(collabs)+1)
	remainder := MaxContributionPercentage
	for _, c := range collabs {
		remainder -= c.ContributionPercentage
		shares = append(shares, RevenueShare{
			Recipient:  c.Collaborator,
			Role:       c.Role,
			Percentage: c.ContributionPercentage,
			Amount:     amount(c.ContributionPercentage),
		})
	}
	remainder = max(remainder, 0)

	return append(shares, RevenueShare{
		Recipient:  owner,
		Role:       OwnerRole,
		Percentage: remainder,
		Amount:     amount(remainder),
	})
}
