package delivery

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(
	r chi.Router,
	uploadHandlerPath string,
	hUpload *UploadHandler,
	hMedia *MediaHandler,
	hWidget *WidgetHandler,
) {
	// widget browser callback
	r.Post(uploadHandlerPath, hUpload.HandleWidgetCallback)

	// server-side upload
	r.Post("/api/media/upload", hUpload.HandleServerUpload)

	// read path
	r.Get("/api/media/{id}", hMedia.GetMedia)

	// widget bootstrap
	r.Get("/api/cloudinary/widget-config", hWidget.GetConfig)

	r.Handle("/metrics", promhttp.Handler())
}
