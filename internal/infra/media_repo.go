package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMediaRepo struct {
	pool     *pgxpool.Pool
	cfg      *config.Config
	log      *logger.ZapLogger
	validate *validator.Validate
}

func NewPostgresMediaRepo(pool *pgxpool.Pool, cfg *config.Config, log *logger.ZapLogger) ports.MediaRepository {
	return &PostgresMediaRepo{
		pool:     pool,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
	}
}

// parseUploadTime accepts Cloudinary's created_at (RFC3339); anything else
// falls back to now.
func parseUploadTime(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}

// SaveUploadRecord writes the media record, runs the relation callback and
// stores image meta in one transaction. Either everything lands or nothing
// does; a failed save returns (nil, err) and the caller decides how loud to
// be about it — the remote upload already happened and cannot be undone here.
func (r *PostgresMediaRepo) SaveUploadRecord(
	ctx context.Context,
	upload *models.UploadResult,
	opts ports.SaveOptions,
) (*models.MediaRecord, error) {

	ts := parseUploadTime(upload.CreatedAt)

	media := &models.MediaRecord{
		PublicID:     upload.PublicID,
		ResourceType: upload.ResourceType,
		Format:       upload.Format,
		Bytes:        upload.Bytes,
		Version:      upload.Version,
		SecureURL:    upload.SecureURL,
		Order:        r.cfg.DefaultOrder,
		Published:    r.cfg.DefaultPublished,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if opts.Order != nil {
		media.Order = *opts.Order
	}
	if opts.Published != nil {
		media.Published = *opts.Published
	}

	if err := r.validate.Struct(media); err != nil {
		r.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "media record validation failed",
			Error:   err,
			Fields:  map[string]any{"publicID": upload.PublicID},
		})
		return nil, fmt.Errorf("validate media record: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO cloudinary_media
			(public_id, resource_type, format, bytes, sort_order, published, secure_url, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		media.PublicID,
		media.ResourceType,
		media.Format,
		media.Bytes,
		media.Order,
		media.Published,
		media.SecureURL,
		media.Version,
		media.CreatedAt,
		media.UpdatedAt,
	)
	if err := row.Scan(&media.ID); err != nil {
		r.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "insert media failed",
			Error:   err,
			Fields:  map[string]any{"publicID": media.PublicID},
		})
		return nil, fmt.Errorf("insert media: %w", err)
	}

	if opts.Callback != nil {
		if err := opts.Callback(ctx, tx, media, opts.Options); err != nil {
			r.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "relation callback failed, rolling back",
				Error:   err,
				Fields: map[string]any{
					"publicID":    media.PublicID,
					"relationKey": opts.Options.RelationKey,
				},
			})
			return nil, fmt.Errorf("relation callback: %w", err)
		}
	}

	if upload.ResourceType == "image" && upload.Width > 0 && upload.Height > 0 {
		meta := &models.ImageMeta{
			MediaID: media.ID,
			Width:   upload.Width,
			Height:  upload.Height,
		}
		if err := r.validate.Struct(meta); err != nil {
			r.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "image meta validation failed",
				Error:   err,
				Fields:  map[string]any{"publicID": media.PublicID},
			})
			return nil, fmt.Errorf("validate image meta: %w", err)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO cloudinary_image_meta (media_id, width, height)
			VALUES ($1, $2, $3)
		`, meta.MediaID, meta.Width, meta.Height)
		if err != nil {
			r.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "insert image meta failed",
				Error:   err,
				Fields:  map[string]any{"publicID": media.PublicID},
			})
			return nil, fmt.Errorf("insert image meta: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return media, nil
}

func (r *PostgresMediaRepo) GetMediaByID(ctx context.Context, id int) (*models.MediaRecord, error) {
	return r.getMedia(ctx, `WHERE id = $1`, id)
}

func (r *PostgresMediaRepo) GetMediaByPublicID(ctx context.Context, publicID string) (*models.MediaRecord, error) {
	return r.getMedia(ctx, `WHERE public_id = $1`, publicID)
}

func (r *PostgresMediaRepo) getMedia(ctx context.Context, where string, arg any) (*models.MediaRecord, error) {
	query := `
		SELECT id, public_id, resource_type, format, bytes, sort_order, published, secure_url, version, created_at, updated_at
		FROM cloudinary_media
	` + where

	var m models.MediaRecord
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.ID,
		&m.PublicID,
		&m.ResourceType,
		&m.Format,
		&m.Bytes,
		&m.Order,
		&m.Published,
		&m.SecureURL,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get media: %w", err)
	}

	return &m, nil
}

// GetImageMeta returns the dimensions row for an image record, nil when the
// record has none (non-image resource types).
func (r *PostgresMediaRepo) GetImageMeta(ctx context.Context, mediaID int) (*models.ImageMeta, error) {
	var meta models.ImageMeta
	err := r.pool.QueryRow(ctx, `
		SELECT id, media_id, width, height, transformations
		FROM cloudinary_image_meta
		WHERE media_id = $1
	`, mediaID).Scan(&meta.ID, &meta.MediaID, &meta.Width, &meta.Height, &meta.Transformations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image meta: %w", err)
	}

	return &meta, nil
}

// ListDescriptions returns all description rows for a record in insertion
// order; readers pick the first match per language.
func (r *PostgresMediaRepo) ListDescriptions(ctx context.Context, mediaID int) ([]models.MediaDescription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, media_id, lang, title, description
		FROM cloudinary_media_desc
		WHERE media_id = $1
		ORDER BY id ASC
	`, mediaID)
	if err != nil {
		return nil, fmt.Errorf("get descriptions: %w", err)
	}
	defer rows.Close()

	var descs []models.MediaDescription
	for rows.Next() {
		var d models.MediaDescription
		if err := rows.Scan(&d.ID, &d.MediaID, &d.Lang, &d.Title, &d.Description); err != nil {
			return nil, fmt.Errorf("scan description: %w", err)
		}
		descs = append(descs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("descriptions rows: %w", err)
	}

	return descs, nil
}

// GetMediaView loads the record plus image meta and all descriptions in one
// call, so rendering never reaches back into the database.
func (r *PostgresMediaRepo) GetMediaView(ctx context.Context, id int) (*models.MediaView, error) {
	media, err := r.getMedia(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, nil
	}

	view := &models.MediaView{Media: *media}

	if view.ImageMeta, err = r.GetImageMeta(ctx, id); err != nil {
		return nil, err
	}
	if view.Descriptions, err = r.ListDescriptions(ctx, id); err != nil {
		return nil, err
	}

	return view, nil
}

func (r *PostgresMediaRepo) AddDescription(ctx context.Context, desc *models.MediaDescription) error {
	if err := r.validate.Struct(desc); err != nil {
		return fmt.Errorf("validate description: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO cloudinary_media_desc (media_id, lang, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, desc.MediaID, desc.Lang, desc.Title, desc.Description)

	if err := row.Scan(&desc.ID); err != nil {
		return fmt.Errorf("insert description: %w", err)
	}
	return nil
}

// DeleteMedia removes the record; image meta and descriptions go with it via
// the cascade on the foreign keys.
func (r *PostgresMediaRepo) DeleteMedia(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cloudinary_media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
