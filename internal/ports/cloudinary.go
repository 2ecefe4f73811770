package ports

import (
	"context"

	"github.com/Vovarama1992/cloudmedia/internal/models"
)

// UploadOptions are the caller-supplied options for one upload. Cloudinary
// params and the application-level keys (RelationKey, Order, Published) travel
// together; the client strips the application keys before going upstream.
type UploadOptions struct {
	Folder       string
	Tags         []string
	PublicID     string
	ResourceType string

	// Extra holds any additional Cloudinary upload params as-is.
	Extra map[string]string

	// Application-level. Never sent to Cloudinary.
	RelationKey string
	Order       *int
	Published   *bool
}

type CloudinaryService interface {
	Upload(ctx context.Context, fileRef string, opts UploadOptions) (*models.UploadResult, error)
}
