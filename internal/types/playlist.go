package types

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"not null;index;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Owner       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"owner,omitempty"`

	Tracks      []*Track `gorm:"foreignKey:PlaylistID;references:ID" json:"tracks,omitempty"`
	FavoritedBy []*User  `gorm:"many2many:user_favorites;" json:"favorited_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Playlist) TableName() string {
	return "playlist"
}
