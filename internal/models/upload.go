package models

// UploadResult is the payload Cloudinary returns after an upload, both from
// the server-side upload API and from the widget's browser callback.
type UploadResult struct {
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
	Bytes        int64  `json:"bytes"`
	Version      *int64 `json:"version,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	SecureURL    string `json:"secure_url"`
	CreatedAt    string `json:"created_at,omitempty"`
}
