package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetConfig(t *testing.T) {
	cfg := &config.Config{
		CloudName:         "demo",
		APIKey:            "key",
		APISecret:         "secret",
		UploadPreset:      "unsigned_preset",
		UploadHandlerPath: "/api/cloudinary/upload-handler",
		Language:          "en",
	}
	h := NewWidgetHandler(domain.NewWidgetBuilder(cfg))

	r := chi.NewRouter()
	r.Get("/api/cloudinary/widget-config", h.GetConfig)

	req := httptest.NewRequest(http.MethodGet, "/api/cloudinary/widget-config?button=my_button", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Library string         `json:"library"`
		Options map[string]any `json:"options"`
		Script  string         `json:"script"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "https://upload-widget.cloudinary.com/latest/global/all.js", body.Library)
	assert.Equal(t, "demo", body.Options["cloudName"])
	assert.Contains(t, body.Script, "cloudinary.createUploadWidget")
	assert.Contains(t, body.Script, `"my_button"`)
}
