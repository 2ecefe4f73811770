package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/cloudmedia/internal/domain"
	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type UploadHandler struct {
	repo    ports.MediaRepository
	service *domain.MediaService
	log     *logger.ZapLogger
}

func NewUploadHandler(repo ports.MediaRepository, service *domain.MediaService, log *logger.ZapLogger) *UploadHandler {
	return &UploadHandler{
		repo:    repo,
		service: service,
		log:     log,
	}
}

type uploadResponse struct {
	Status   string               `json:"status"`
	Message  string               `json:"message"`
	Media    *models.MediaRecord  `json:"media,omitempty"`
	Response *models.UploadResult `json:"response,omitempty"`
}

// POST <upload handler path>
//
// The widget uploads straight to Cloudinary from the browser and then posts
// the result payload here. By the time we see it the asset already exists
// remotely, so a failed save is reported in the body, not as a 5xx.
func (h *UploadHandler) HandleWidgetCallback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		models.UploadResult
		RelationKey string `json:"relationKey"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, uploadResponse{
			Status:  "error",
			Message: "invalid json: " + err.Error(),
		})
		return
	}

	if payload.PublicID == "" {
		writeJSON(w, http.StatusBadRequest, uploadResponse{
			Status:  "error",
			Message: "missing required Cloudinary data",
		})
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "widget upload callback received",
		Fields: map[string]any{
			"publicID":     payload.PublicID,
			"resourceType": payload.ResourceType,
			"bytes":        payload.Bytes,
		},
	})

	opts := ports.UploadOptions{RelationKey: payload.RelationKey}

	media, err := h.repo.SaveUploadRecord(r.Context(), &payload.UploadResult, ports.SaveOptions{
		Callback: h.service.ResolveCallback(payload.RelationKey),
		Options:  opts,
	})
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "cloudinary upload succeeded but persistence failed",
			Error:   err,
			Fields:  map[string]any{"publicID": payload.PublicID},
		})
		writeJSON(w, http.StatusOK, uploadResponse{
			Status:  "error",
			Message: "upload was received but failed to save",
		})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:  "ok",
		Message: "upload stored and saved successfully",
		Media:   media,
	})
}

type serverUploadRequest struct {
	File         string            `json:"file"`
	Folder       string            `json:"folder,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	PublicID     string            `json:"publicId,omitempty"`
	ResourceType string            `json:"resourceType,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	RelationKey  string            `json:"relationKey,omitempty"`
	Order        *int              `json:"order,omitempty"`
	Published    *bool             `json:"published,omitempty"`
}

// POST /api/media/upload
//
// Server-side upload: we push the file reference to Cloudinary ourselves and
// persist the result in one pass.
func (h *UploadHandler) HandleServerUpload(w http.ResponseWriter, r *http.Request) {
	var req serverUploadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, uploadResponse{
			Status:  "error",
			Message: "invalid json: " + err.Error(),
		})
		return
	}

	if req.File == "" {
		writeJSON(w, http.StatusBadRequest, uploadResponse{
			Status:  "error",
			Message: "missing file reference",
		})
		return
	}

	outcome, err := h.service.Upload(r.Context(), req.File, ports.UploadOptions{
		Folder:       req.Folder,
		Tags:         req.Tags,
		PublicID:     req.PublicID,
		ResourceType: req.ResourceType,
		Extra:        req.Extra,
		RelationKey:  req.RelationKey,
		Order:        req.Order,
		Published:    req.Published,
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, uploadResponse{
			Status:  "error",
			Message: "cloudinary upload failed: " + err.Error(),
		})
		return
	}

	if outcome.Media == nil {
		writeJSON(w, http.StatusOK, uploadResponse{
			Status:   "error",
			Message:  "upload stored remotely but failed to save locally",
			Response: outcome.Response,
		})
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Status:   "ok",
		Message:  "upload stored and saved successfully",
		Media:    outcome.Media,
		Response: outcome.Response,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
