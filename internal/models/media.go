package models

import "time"

// MediaRecord is one uploaded asset as Cloudinary reported it back to us.
// A record exists for every resource type; ImageMeta only accompanies images.
type MediaRecord struct {
	ID           int       `db:"id" json:"id"`
	PublicID     string    `db:"public_id" json:"public_id" validate:"required,max=255"`
	ResourceType string    `db:"resource_type" json:"resource_type" validate:"max=50"`
	Format       string    `db:"format" json:"format" validate:"max=20"`
	Bytes        int64     `db:"bytes" json:"bytes"`
	Order        int       `db:"sort_order" json:"order" validate:"min=0"`
	Published    bool      `db:"published" json:"published"`
	SecureURL    string    `db:"secure_url" json:"secure_url" validate:"max=500"`
	Version      *int64    `db:"version" json:"version,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ImageMeta holds width/height for image records. One row per MediaRecord,
// removed by cascade when the record goes.
type ImageMeta struct {
	ID              int     `db:"id" json:"id"`
	MediaID         int     `db:"media_id" json:"media_id" validate:"required"`
	Width           int     `db:"width" json:"width" validate:"min=0"`
	Height          int     `db:"height" json:"height" validate:"min=0"`
	Transformations *string `db:"transformations" json:"transformations,omitempty" validate:"omitempty,max=255"`
}

// MediaDescription is a per-language title/description for a record.
// Several rows per language are allowed; readers take the first match.
type MediaDescription struct {
	ID          int     `db:"id" json:"id"`
	MediaID     int     `db:"media_id" json:"media_id" validate:"required"`
	Lang        string  `db:"lang" json:"lang" validate:"required,max=5"`
	Title       *string `db:"title" json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description,omitempty" validate:"omitempty,max=200"`
}

// MediaView bundles everything the renderer needs, loaded eagerly in one go.
type MediaView struct {
	Media        MediaRecord        `json:"media"`
	ImageMeta    *ImageMeta         `json:"image_meta,omitempty"`
	Descriptions []MediaDescription `json:"descriptions"`
}
