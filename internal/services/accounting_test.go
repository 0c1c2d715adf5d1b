package services

import (
	"testing"

	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContributionCeiling(t *testing.T) {
	existing := []models.Collaboration{
		{ContributionPercentage: 30},
		{ContributionPercentage: 50},
	}

	assert.NoError(t, checkContributionCeiling(existing, 20))
	assert.NoError(t, checkContributionCeiling(nil, 100))
	assert.ErrorIs(t, checkContributionCeiling(existing, 21), types.ErrInvalidArgument)
}

func TestCheckTrackTransition(t *testing.T) {
	assert.NoError(t, checkTrackTransition(models.TrackDraft, models.TrackRecording))
	assert.NoError(t, checkTrackTransition(models.TrackDraft, models.TrackCompleted))
	assert.ErrorIs(t, checkTrackTransition(models.TrackCompleted, models.TrackCompleted), types.ErrConflict)
	assert.ErrorIs(t, checkTrackTransition(models.TrackMixing, models.TrackRecording), types.ErrConflict)
	assert.ErrorIs(t, checkTrackTransition(models.TrackDraft, "Archived"), types.ErrInvalidArgument)
}

func TestCheckListable(t *testing.T) {
	unminted := &models.NFT{ID: "n1"}
	minted := &models.NFT{ID: "n2", IsMinted: true}

	assert.ErrorIs(t, checkListable(unminted, true), types.ErrConflict)
	assert.NoError(t, checkListable(unminted, false))
	assert.NoError(t, checkListable(minted, true))
}

func TestMarketplaceURL(t *testing.T) {
	assert.Equal(t, "https://opensea.io/assets/ethereum/0xABC/1", marketplaceURL(DefaultMarketplaceBase, "0xABC", "1"))
}

func TestRevenueShares(t *testing.T) {
	collabs := []models.Collaboration{
		{Collaborator: "bob", Role: "Vocals", ContributionPercentage: 30},
		{Collaborator: "carol", Role: "Keys", ContributionPercentage: 15},
	}

	shares := revenueShares("alice", decimal.NewNullDecimal(decimal.RequireFromString("2.000000000000000001")), collabs)
	require.Len(t, shares, 3)
	assert.Equal(t, "bob", shares[0].Recipient)
	assert.Equal(t, "Vocals", shares[0].Role)
	assert.Equal(t, 30, shares[0].Percentage)
	assert.True(t, shares[0].Amount.Decimal.Equal(decimal.RequireFromString("0.6000000000000000003")))
	assert.Equal(t, "carol", shares[1].Recipient)
	assert.True(t, shares[1].Amount.Decimal.Equal(decimal.RequireFromString("0.30000000000000000015")))
	assert.Equal(t, "alice", shares[2].Recipient)
	assert.Equal(t, OwnerRole, shares[2].Role)
	assert.Equal(t, 55, shares[2].Percentage)
	assert.True(t, shares[2].Amount.Decimal.Equal(decimal.RequireFromString("1.10000000000000000055")))

	unpriced := revenueShares("alice", decimal.NullDecimal{}, collabs)
	for _, share := range unpriced {
		assert.False(t, share.Amount.Valid, share.Recipient)
	}

	alone := revenueShares("alice", decimal.NullDecimal{}, nil)
	require.Len(t, alone, 1)
	assert.Equal(t, 100, alone[0].Percentage)

	over := revenueShares("alice", decimal.NullDecimal{}, []models.Collaboration{
		{Collaborator: "bob", ContributionPercentage: 80},
		{Collaborator: "carol", ContributionPercentage: 80},
	})
	assert.Equal(t, 0, over[2].Percentage)
}
