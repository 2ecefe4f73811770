package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/delivery"
	"github.com/Vovarama1992/cloudmedia/internal/domain"
	"github.com/Vovarama1992/cloudmedia/internal/infra"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		panic("cannot connect pgxpool: " + err.Error())
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		panic("postgres ping failed: " + err.Error())
	}

	// RELATION CALLBACKS
	//
	// Domain code attaches its callbacks here before the server starts, e.g.:
	//
	//	relations.Register("article-cover", func(ctx context.Context, tx pgx.Tx, media *models.MediaRecord, opts ports.UploadOptions) error {
	//		_, err := tx.Exec(ctx, `UPDATE article SET cover_media_id = $1 WHERE id = $2`, media.ID, opts.Extra["articleId"])
	//		return err
	//	})
	relations := ports.NewRegistry()

	// SERVICES
	mediaRepo := infra.NewPostgresMediaRepo(pool, cfg, zl)
	cloudinary := infra.NewCloudinaryClient(cfg)
	mediaService := domain.NewMediaService(cloudinary, mediaRepo, relations, zl)
	widgetBuilder := domain.NewWidgetBuilder(cfg)

	// HANDLERS
	hUpload := delivery.NewUploadHandler(mediaRepo, mediaService, zl)
	hMedia := delivery.NewMediaHandler(mediaRepo, cfg, zl)
	hWidget := delivery.NewWidgetHandler(widgetBuilder)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(delivery.MetricsMiddleware)

	delivery.RegisterRoutes(r, cfg.UploadHandlerPath, hUpload, hMedia, hWidget)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
