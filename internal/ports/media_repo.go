package ports

import (
	"context"

	"github.com/Vovarama1992/cloudmedia/internal/models"
)

// SaveOptions parameterize one transactional save. Callback (when set) runs
// inside the same transaction; its failure rolls everything back.
type SaveOptions struct {
	Order     *int
	Published *bool
	Callback  RelationCallback
	Options   UploadOptions
}

type MediaRepository interface {
	SaveUploadRecord(ctx context.Context, upload *models.UploadResult, opts SaveOptions) (*models.MediaRecord, error)

	GetMediaByID(ctx context.Context, id int) (*models.MediaRecord, error)
	GetMediaByPublicID(ctx context.Context, publicID string) (*models.MediaRecord, error)
	GetImageMeta(ctx context.Context, mediaID int) (*models.ImageMeta, error)
	ListDescriptions(ctx context.Context, mediaID int) ([]models.MediaDescription, error)
	GetMediaView(ctx context.Context, id int) (*models.MediaView, error)

	AddDescription(ctx context.Context, desc *models.MediaDescription) error
	DeleteMedia(ctx context.Context, id int) error
}
