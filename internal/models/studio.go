package models

import (
	"time"
)

// User is a registered identity. ID is the identity token assigned by the
// external auth boundary and never changes.
type User struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Name      *string   `gorm:"size:255" json:"name,omitempty"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	AvatarURL *string   `gorm:"size:1024" json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is owned by the identity that created it. The id lists are
// denormalized back-references kept in step with the child rows.
type Project struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Owner         string    `gorm:"size:128;not null;index" json:"owner"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	Collaborators IDList    `json:"collaborators"`
	Tracks        IDList    `json:"tracks"`
	NFTs          IDList    `gorm:"column:nfts" json:"nfts"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Track belongs to a project. Duration is in seconds.
type Track struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	ProjectID  string      `gorm:"size:36;not null;index" json:"projectId"`
	Name       string      `gorm:"size:255;not null" json:"name"`
	ContentRef string      `gorm:"size:255;not null" json:"contentRef"`
	Duration   uint64      `gorm:"not null;default:0" json:"duration"`
	Status     TrackStatus `gorm:"size:16;not null;default:Draft" json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NFT belongs to a project. TokenID and ContractAddress are set together by
// minting and IsMinted mirrors their presence.
type NFT struct {
	ID                string              `gorm:"primaryKey;size:36" json:"id"`
	ProjectID         string              `gorm:"size:36;not null;index" json:"projectId"`
	Creator           string              `gorm:"size:128;not null;index" json:"creator"`
	Title             string              `gorm:"size:255;not null" json:"title"`
	Description       *string             `gorm:"type:text" json:"description,omitempty"`
	Price             Price               `json:"price" swaggertype:"string"`
	RoyaltyPercentage int                 `gorm:"not null;default:0" json:"royaltyPercentage"`
	MetadataURI       string              `gorm:"size:1024;not null" json:"metadataUri"`
	TokenID           *string             `gorm:"size:255" json:"tokenId,omitempty"`
	ContractAddress   *string             `gorm:"size:255" json:"contractAddress,omitempty"`
	IsMinted          bool                `gorm:"not null;default:false" json:"isMinted"`
	IsListed          bool                `gorm:"not null;default:false" json:"isListed"`
	MarketplaceURL    *string             `gorm:"size:1024" json:"marketplaceUrl,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// Collaboration grants a non-owner identity contribution rights on a project.
type Collaboration struct {
	ID                     string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID              string    `gorm:"size:36;not null;index" json:"projectId"`
	Collaborator           string    `gorm:"size:128;not null;index" json:"collaborator"`
	ContributionPercentage int       `gorm:"not null;default:0" json:"contributionPercentage"`
	Role                   string    `gorm:"size:255;not null" json:"role"`
	JoinedAt               time.Time `json:"joinedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// TableName overrides the table name for Track
func (Track) TableName() string {
	return "tracks"
}

// TableName overrides the table name for NFT
func (NFT) TableName() string {
	return "nfts"
}

// TableName overrides the table name for Collaboration
func (Collaboration) TableName() string {
	return "collaborations"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&Track{},
		&NFT{},
		&Collaboration{},
	}
}
