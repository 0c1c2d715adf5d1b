package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/localnerve/nftune-store/internal/models"
	"github.com/localnerve/nftune-store/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nftInput(royalty int) NFTInput {
	return NFTInput{
		Title:             "Genesis",
		RoyaltyPercentage: royalty,
		MetadataURI:       "ipfs://meta",
	}
}

func TestCreateNFT_RoyaltyBounds(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "Demo")

	for r := -1; r <= 51; r++ {
		t.Run(fmt.Sprintf("royalty_%d", r), func(t *testing.T) {
			nft, err := s.CreateNFT(ctx, alice, p.ID, nftInput(r))
			if r >= 0 && r <= 50 {
				require.NoError(t, err)
				assert.Equal(t, r, nft.RoyaltyPercentage)
				return
			}
			requireKind(t, err, types.KindInvalidArgument)
		})
	}

	nfts, err := s.GetProjectNFTs(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, nfts, 51)
}

func TestCreateNFT(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob, carol)
	p := newProject(t, s, alice, "Demo")
	_, err := s.AddCollaborator(ctx, alice, p.ID, CollaboratorInput{Collaborator: bob, ContributionPercentage: 25, Role: "Vocals"})
	require.NoError(t, err)

	in := nftInput(10)
	in.Description = ptr("first drop")
	in.Price = decimal.NewNullDecimal(decimal.RequireFromString("0.125"))

	nft, err := s.CreateNFT(ctx, bob, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "bob", nft.Creator)
	assert.False(t, nft.IsMinted)
	assert.False(t, nft.IsListed)
	assert.Nil(t, nft.TokenID)
	assert.Nil(t, nft.ContractAddress)
	assert.Nil(t, nft.MarketplaceURL)

	stored, err := s.GetNFT(ctx, nft.ID)
	require.NoError(t, err)
	require.True(t, stored.Price.Valid)
	assert.True(t, stored.Price.Decimal.Equal(decimal.RequireFromString("0.125")))

	_, err = s.CreateNFT(ctx, carol, p.ID, nftInput(10))
	requireKind(t, err, types.KindForbidden)

	_, err = s.CreateNFT(ctx, alice, "missing", nftInput(10))
	requireKind(t, err, types.KindNotFound)

	neg := nftInput(10)
	neg.Price = decimal.NewNullDecimal(decimal.NewFromInt(-1))
	_, err = s.CreateNFT(ctx, alice, p.ID, neg)
	requireKind(t, err, types.KindInvalidArgument)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{nft.ID}, got.NFTs)
}

func TestMintNFT_OneWay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob)
	p := newProject(t, s, alice, "Demo")

	nft, err := s.CreateNFT(ctx, alice, p.ID, nftInput(10))
	require.NoError(t, err)

	_, err = s.MintNFT(ctx, bob, nft.ID, MintInput{TokenID: "1", ContractAddress: "0xABC"})
	requireKind(t, err, types.KindForbidden)

	minted, err := s.MintNFT(ctx, alice, nft.ID, MintInput{TokenID: "1", ContractAddress: "0xABC"})
	require.NoError(t, err)
	assert.True(t, minted.IsMinted)
	require.NotNil(t, minted.TokenID)
	assert.Equal(t, "1", *minted.TokenID)
	require.NotNil(t, minted.ContractAddress)
	assert.Equal(t, "0xABC", *minted.ContractAddress)
	require.NotNil(t, minted.MarketplaceURL)
	assert.Equal(t, "https://opensea.io/assets/ethereum/0xABC/1", *minted.MarketplaceURL)
	assert.True(t, minted.UpdatedAt.After(nft.UpdatedAt))

	for _, in := range []MintInput{
		{TokenID: "1", ContractAddress: "0xABC"},
		{TokenID: "2", ContractAddress: "0xDEF"},
		{},
	} {
		_, err = s.MintNFT(ctx, alice, nft.ID, in)
		requireKind(t, err, types.KindConflict)
	}

	stored, err := s.GetNFT(ctx, nft.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", *stored.TokenID)
	assert.Equal(t, "0xABC", *stored.ContractAddress)
}

func TestMintNFT_RequiresBothFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "Demo")
	nft, err := s.CreateNFT(ctx, alice, p.ID, nftInput(5))
	require.NoError(t, err)

	_, err = s.MintNFT(ctx, alice, nft.ID, MintInput{TokenID: "7"})
	requireKind(t, err, types.KindInvalidArgument)

	stored, err := s.GetNFT(ctx, nft.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsMinted)
	assert.Nil(t, stored.TokenID)
	assert.Nil(t, stored.ContractAddress)

	_, err = s.MintNFT(ctx, alice, "missing", MintInput{TokenID: "1", ContractAddress: "0x1"})
	requireKind(t, err, types.KindNotFound)
}

func TestMintNFT_MarketplaceBase(t *testing.T) {
	s := newTestService(t, WithMarketplaceBase("https://market.example/assets/"))
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "Demo")
	nft, err := s.CreateNFT(ctx, alice, p.ID, nftInput(5))
	require.NoError(t, err)

	minted, err := s.MintNFT(ctx, alice, nft.ID, MintInput{TokenID: "42", ContractAddress: "0xFEED"})
	require.NoError(t, err)
	assert.Equal(t, "https://market.example/assets/0xFEED/42", *minted.MarketplaceURL)
}

func TestSetNFTListing(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob)
	p := newProject(t, s, alice, "Demo")
	nft, err := s.CreateNFT(ctx, alice, p.ID, nftInput(5))
	require.NoError(t, err)

	_, err = s.SetNFTListing(ctx, alice, nft.ID, true)
	requireKind(t, err, types.KindConflict)

	_, err = s.MintNFT(ctx, alice, nft.ID, MintInput{TokenID: "1", ContractAddress: "0xABC"})
	require.NoError(t, err)

	_, err = s.SetNFTListing(ctx, bob, nft.ID, true)
	requireKind(t, err, types.KindForbidden)

	listed, err := s.SetNFTListing(ctx, alice, nft.ID, true)
	require.NoError(t, err)
	assert.True(t, listed.IsListed)

	unlisted, err := s.SetNFTListing(ctx, alice, nft.ID, false)
	require.NoError(t, err)
	assert.False(t, unlisted.IsListed)
	assert.True(t, unlisted.IsMinted)
	assert.True(t, unlisted.UpdatedAt.After(listed.UpdatedAt))
}

func TestGetNFTs(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob)
	p1 := newProject(t, s, alice, "one")
	p2 := newProject(t, s, bob, "two")

	n1, err := s.CreateNFT(ctx, alice, p1.ID, nftInput(1))
	require.NoError(t, err)
	n2, err := s.CreateNFT(ctx, bob, p2.ID, nftInput(2))
	require.NoError(t, err)

	all, err := s.GetNFTs(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, n1.ID, all[0].ID)
	assert.Equal(t, n2.ID, all[1].ID)

	only, err := s.GetProjectNFTs(ctx, p2.ID)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, n2.ID, only[0].ID)

	_, err = s.GetNFT(ctx, "missing")
	requireKind(t, err, types.KindNotFound)
}

func TestCreateNFT_PriceKeepsEveryDigit(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "Demo")

	want := decimal.RequireFromString("1.123456789012345678")
	in := nftInput(5)
	in.Price = decimal.NewNullDecimal(want)
	nft, err := s.CreateNFT(ctx, alice, p.ID, in)
	require.NoError(t, err)

	stored, err := s.GetNFT(ctx, nft.ID)
	require.NoError(t, err)
	require.True(t, stored.Price.Valid)
	assert.True(t, stored.Price.Decimal.Equal(want), "got %s", stored.Price.Decimal)

	unpriced, err := s.CreateNFT(ctx, alice, p.ID, nftInput(5))
	require.NoError(t, err)
	stored, err = s.GetNFT(ctx, unpriced.ID)
	require.NoError(t, err)
	assert.False(t, stored.Price.Valid)
}

func TestCreateNFT_RequiresTitle(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "Demo")

	in := nftInput(5)
	in.Title = "   "
	_, err := s.CreateNFT(ctx, alice, p.ID, in)
	requireKind(t, err, types.KindInvalidArgument)

	got, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.NFTs)
}

func TestGetNFTDetail(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob, carol)
	p := newProject(t, s, alice, "Demo")
	_, err := s.AddCollaborator(ctx, alice, p.ID, CollaboratorInput{Collaborator: bob, ContributionPercentage: 40, Role: "Vocals"})
	require.NoError(t, err)
	_, err = s.AddCollaborator(ctx, alice, p.ID, CollaboratorInput{Collaborator: carol, ContributionPercentage: 10, Role: "Keys"})
	require.NoError(t, err)

	in := nftInput(5)
	in.Price = decimal.NewNullDecimal(decimal.RequireFromString("3"))
	nft, err := s.CreateNFT(ctx, alice, p.ID, in)
	require.NoError(t, err)

	detail, err := s.GetNFTDetail(ctx, nft.ID)
	require.NoError(t, err)
	assert.Equal(t, nft.ID, detail.NFT.ID)
	assert.Len(t, detail.Collaborators, 2)
	require.Len(t, detail.RevenueShares, 3)

	byRecipient := map[string]RevenueShare{}
	for _, share := range detail.RevenueShares {
		byRecipient[share.Recipient] = share
	}
	assert.Equal(t, 40, byRecipient[string(bob)].Percentage)
	assert.True(t, byRecipient[string(bob)].Amount.Decimal.Equal(decimal.RequireFromString("1.2")))
	assert.Equal(t, 10, byRecipient[string(carol)].Percentage)
	assert.True(t, byRecipient[string(carol)].Amount.Decimal.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, OwnerRole, byRecipient[string(alice)].Role)
	assert.Equal(t, 50, byRecipient[string(alice)].Percentage)
	assert.True(t, byRecipient[string(alice)].Amount.Decimal.Equal(decimal.RequireFromString("1.5")))

	_, err = s.GetNFTDetail(ctx, "missing")
	requireKind(t, err, types.KindNotFound)
}
