package delivery

import (
	"net/http"

	"github.com/Vovarama1992/cloudmedia/internal/domain"
)

type WidgetHandler struct {
	builder *domain.WidgetBuilder
}

func NewWidgetHandler(builder *domain.WidgetBuilder) *WidgetHandler {
	return &WidgetHandler{builder: builder}
}

// GET /api/cloudinary/widget-config
//
// Hands the frontend everything it needs to boot the upload widget:
// merged options plus the bootstrap script. ?lang= and ?button= tune it.
func (h *WidgetHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	buttonID := r.URL.Query().Get("button")

	options := h.builder.Options(lang, nil, nil)

	script, err := h.builder.Script(buttonID, options, "")
	if err != nil {
		http.Error(w, "failed to build widget script: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"library": h.builder.LibraryURL(),
		"options": options,
		"script":  script,
	})
}
