package domain

import (
	"encoding/json"
	"fmt"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/i18n"
)

// widgetLibraryURL is the Cloudinary-hosted widget script a page must load
// before running the bootstrap JS.
const widgetLibraryURL = "https://upload-widget.cloudinary.com/latest/global/all.js"

// defaultWidgetOptions mirror the Cloudinary upload widget defaults we ship.
// Callers override per page; cloudName/uploadPreset/text are filled in by the
// builder.
func defaultWidgetOptions() map[string]any {
	return map[string]any{
		"sources":       []string{"local", "url", "camera"},
		"defaultSource": "local",
		"secure":        true,
		"multiple":      false,
		"maxFiles":      10,

		"folder":                         "",
		"tags":                           []string{},
		"resourceType":                   "auto",
		"publicIdPrefix":                 "",
		"useAssetFolderAsPublicIdPrefix": false,

		"clientAllowedFormats":   []string{"jpg", "jpeg", "png", "gif", "webp"},
		"maxFileSize":            10485760,
		"maxImageWidth":          2000,
		"maxImageHeight":         2000,
		"validateMaxWidthHeight": false,

		"cropping":                      false,
		"croppingDefaultSelectionRatio": 1.0,
		"croppingShowDimensions":        false,
		"croppingCoordinatesMode":       "custom",
		"croppingShowBackButton":        true,
		"showSkipCropButton":            true,

		"thumbnailTransformation": []map[string]any{
			{"width": 150, "height": 150, "crop": "fit"},
		},

		"fieldName":  "upload[]",
		"thumbnails": ".uploaded-thumbnails",

		"theme":         "default",
		"buttonClass":   "cloudinary-button",
		"buttonCaption": "Upload image",

		"autoMinimize":          false,
		"singleUploadAutoClose": true,
		"showCompletedButton":   false,
		"showUploadMoreButton":  true,
		"showAdvancedOptions":   false,
		"showPoweredBy":         true,
		"queueViewPosition":     "right:35px",
		"showInsecurePreview":   false,
	}
}

// WidgetBuilder assembles the client-side upload widget configuration:
// shipped defaults, credentials, merged translations, caller overrides.
type WidgetBuilder struct {
	cfg *config.Config
}

func NewWidgetBuilder(cfg *config.Config) *WidgetBuilder {
	return &WidgetBuilder{cfg: cfg}
}

// LibraryURL tells the frontend where the widget script lives.
func (b *WidgetBuilder) LibraryURL() string {
	return widgetLibraryURL
}

// Options merges, in ascending precedence: shipped defaults, credentials and
// translated text, caller overrides.
func (b *WidgetBuilder) Options(lang string, textOverrides map[string]string, overrides map[string]any) map[string]any {
	if lang == "" {
		lang = b.cfg.Language
	}

	opts := defaultWidgetOptions()
	opts["cloudName"] = b.cfg.CloudName
	opts["uploadPreset"] = b.cfg.UploadPreset
	opts["text"] = map[string]any{lang: i18n.WidgetText(lang, textOverrides)}
	opts["language"] = lang

	for k, v := range overrides {
		opts[k] = v
	}

	return opts
}

// Script renders the inline JS that creates the widget and posts successful
// upload results back to our handler endpoint.
func (b *WidgetBuilder) Script(buttonID string, options map[string]any, endpoint string) (string, error) {
	if buttonID == "" {
		buttonID = "upload_widget"
	}
	if endpoint == "" {
		endpoint = b.cfg.UploadHandlerPath
	}

	jsonOptions, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("marshal widget options: %w", err)
	}

	js := fmt.Sprintf(`var cloudinaryUploadWidget = cloudinary.createUploadWidget(%s, function(error, result) {
    if (!error && result && result.event === "success") {
        fetch(%q, {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(result.info)
        });
    }
});

document.getElementById(%q).addEventListener("click", function () {
    cloudinaryUploadWidget.open();
}, false);`, jsonOptions, endpoint, buttonID)

	return js, nil
}
