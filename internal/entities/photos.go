package entities

import (
	"time"
)

// SortKey names a photo listing order.
type SortKey string

const (
	SortByFilename   SortKey = "filename"
	SortByTakenAt    SortKey = "takenAt"
	SortByModifiedAt SortKey = "modifiedAt"
	SortByUploadedAt SortKey = "uploadedAt"
	SortByCustom     SortKey = "custom" // service order
)

// SortOrder is the direction of a photo listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Album is a locally mirrored album of the photo service.
type Album struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	PhotoCount int       `json:"photo_count"`
	Photos     []Photo   `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	SyncedAt   time.Time `json:"synced_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Photo mirrors one photo record of the photo service listing.
type Photo struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	AlbumID       string     `gorm:"index;size:64" json:"album_id"`
	Filename      string     `gorm:"index;size:512" json:"filename"`
	Path          string     `gorm:"size:2048" json:"path"`
	ThumbnailPath string     `gorm:"size:2048" json:"thumbnail_path,omitempty"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	Tags          []string   `gorm:"serializer:json" json:"tags,omitempty"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
	ModifiedAt    *time.Time `json:"modified_at,omitempty"`
	UploadedAt    time.Time  `gorm:"index" json:"uploaded_at"`
	Position      int        `gorm:"index" json:"position"` // index in the service listing
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Album) TableName() string {
	return "albums"
}

func (Photo) TableName() string {
	return "photos"
}
