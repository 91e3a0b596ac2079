package types

import (
	"time"

	"github.com/google/uuid"
)

type Track struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	Artist     string    `gorm:"not null;column:artist" json:"artist"`
	URL        string    `gorm:"column:url" json:"url,omitempty"`
	ImageURL   string    `gorm:"column:image_url" json:"image,omitempty"`
	PlaylistID uuid.UUID `gorm:"type:uuid;not null;index" json:"playlist_id"`
	Playlist   *Playlist `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlaylistID;references:ID" json:"playlist,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Track) TableName() string {
	return "track"
}
