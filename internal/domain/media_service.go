package domain

import (
	"context"

	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type MediaService struct {
	cloud     ports.CloudinaryService
	repo      ports.MediaRepository
	relations *ports.Registry
	log       *logger.ZapLogger
}

func NewMediaService(
	cloud ports.CloudinaryService,
	repo ports.MediaRepository,
	relations *ports.Registry,
	log *logger.ZapLogger,
) *MediaService {
	return &MediaService{
		cloud:     cloud,
		repo:      repo,
		relations: relations,
		log:       log,
	}
}

// UploadOutcome carries both sides of an upload: what Cloudinary returned and
// what we managed to persist. Media is nil when the remote upload succeeded
// but the local save did not — those are different failures and callers need
// to tell them apart.
type UploadOutcome struct {
	Response *models.UploadResult `json:"response"`
	Media    *models.MediaRecord  `json:"media"`
}

// Upload pushes a file reference to Cloudinary and records the result.
// A remote failure is returned as an error with nothing persisted. A local
// persistence failure is NOT an error here: the remote side effect already
// happened and cannot be rolled back, so the outcome just has Media == nil.
func (s *MediaService) Upload(ctx context.Context, fileRef string, opts ports.UploadOptions) (*UploadOutcome, error) {

	var cb ports.RelationCallback
	if opts.RelationKey != "" {
		found, ok := s.relations.Resolve(opts.RelationKey)
		if ok {
			cb = found
		} else {
			s.log.Log(logger.LogEntry{
				Level:   "warn",
				Message: "unknown relation key, proceeding without callback",
				Fields:  map[string]any{"relationKey": opts.RelationKey},
			})
		}
	}

	// The relation key is an application-only signal.
	upstream := opts
	upstream.RelationKey = ""

	res, err := s.cloud.Upload(ctx, fileRef, upstream)
	if err != nil {
		return nil, err
	}

	media, err := s.repo.SaveUploadRecord(ctx, res, ports.SaveOptions{
		Order:     opts.Order,
		Published: opts.Published,
		Callback:  cb,
		Options:   opts,
	})
	if err != nil {
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "upload stored remotely but local save failed",
			Error:   err,
			Fields:  map[string]any{"publicID": res.PublicID},
		})
		return &UploadOutcome{Response: res, Media: nil}, nil
	}

	return &UploadOutcome{Response: res, Media: media}, nil
}

// ResolveCallback looks up a relation key for callers that drive the save
// themselves (the upload-handler endpoint). Empty key resolves to nil.
func (s *MediaService) ResolveCallback(key string) ports.RelationCallback {
	if key == "" {
		return nil
	}
	cb, ok := s.relations.Resolve(key)
	if !ok {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "unknown relation key, proceeding without callback",
			Fields:  map[string]any{"relationKey": key},
		})
		return nil
	}
	return cb
}
