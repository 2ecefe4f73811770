package delivery

import (
	"net/http"
	"strconv"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/domain"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
)

type MediaHandler struct {
	repo ports.MediaRepository
	cfg  *config.Config
	log  *logger.ZapLogger
}

func NewMediaHandler(repo ports.MediaRepository, cfg *config.Config, log *logger.ZapLogger) *MediaHandler {
	return &MediaHandler{
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

// GET /api/media/{id}
//
// Returns the record with image meta and descriptions eagerly loaded.
// ?render=img|srcset additionally returns the responsive markup,
// ?lang= picks the alt-text language (defaults to the app language).
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	view, err := h.repo.GetMediaView(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load media: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if view == nil {
		http.Error(w, "media not found", http.StatusNotFound)
		return
	}

	resp := map[string]any{
		"media":        view.Media,
		"image_meta":   view.ImageMeta,
		"descriptions": view.Descriptions,
	}

	if render := r.URL.Query().Get("render"); render != "" {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = h.cfg.Language
		}

		output := domain.OutputImg
		if render == "srcset" {
			output = domain.OutputSrcset
		}

		resp["html"] = domain.RenderResponsiveImage(h.cfg.CloudName, view, domain.RenderOptions{
			Output: output,
			Lang:   lang,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
