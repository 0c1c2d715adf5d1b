package services

import (
	"context"
	"testing"

	"github.com/localnerve/nftune-store/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_CollaboratorCannotRenameProject(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice, bob)

	p, err := s.CreateProject(ctx, alice, ProjectInput{Name: "P"})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Owner)

	_, err = s.AddCollaborator(ctx, alice, p.ID, CollaboratorInput{Collaborator: bob, ContributionPercentage: 30, Role: "Vocalist"})
	require.NoError(t, err)

	_, err = s.UpdateProject(ctx, bob, p.ID, ProjectUpdate{Name: ptr("X")})
	requireKind(t, err, types.KindForbidden)

	updated, err := s.UpdateProject(ctx, alice, p.ID, ProjectUpdate{Name: ptr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Name)

	stored, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", stored.Name)
}

func TestScenario_CreateAndMintNFT(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	register(t, s, alice)
	p := newProject(t, s, alice, "P")

	n, err := s.CreateNFT(ctx, alice, p.ID, NFTInput{Title: "N", RoyaltyPercentage: 10, MetadataURI: "ipfs://n"})
	require.NoError(t, err)

	minted, err := s.MintNFT(ctx, alice, n.ID, MintInput{TokenID: "1", ContractAddress: "0xABC"})
	require.NoError(t, err)
	assert.True(t, minted.IsMinted)
	require.NotNil(t, minted.TokenID)
	assert.Equal(t, "1", *minted.TokenID)
	require.NotNil(t, minted.MarketplaceURL)
	assert.Contains(t, *minted.MarketplaceURL, "0xABC")
	assert.Contains(t, *minted.MarketplaceURL, "/1")
}
