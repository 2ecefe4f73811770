package infra

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/cloudmedia/internal/config"
	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/Vovarama1992/cloudmedia/internal/ports"
)

type CloudinaryClient struct {
	cloudName string
	apiKey    string
	apiSecret string
	preset    string
	client    *http.Client
}

func NewCloudinaryClient(cfg *config.Config) ports.CloudinaryService {
	return &CloudinaryClient{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		preset:    cfg.UploadPreset,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one file reference to Cloudinary's upload API. fileRef is
// either a local path or a remote URL — Cloudinary fetches remote sources
// itself. The application-level option keys never leave this process.
func (c *CloudinaryClient) Upload(ctx context.Context, fileRef string, opts ports.UploadOptions) (*models.UploadResult, error) {

	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}
	if c.preset != "" {
		params["upload_preset"] = c.preset
	}
	if opts.Folder != "" {
		params["folder"] = opts.Folder
	}
	if len(opts.Tags) > 0 {
		params["tags"] = strings.Join(opts.Tags, ",")
	}
	if opts.PublicID != "" {
		params["public_id"] = opts.PublicID
	}
	for k, v := range opts.Extra {
		params[k] = v
	}

	params["signature"] = c.sign(params)
	params["api_key"] = c.apiKey

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if isRemoteRef(fileRef) {
		if err := mw.WriteField("file", fileRef); err != nil {
			return nil, fmt.Errorf("write file ref: %w", err)
		}
	} else {
		f, err := os.Open(fileRef)
		if err != nil {
			return nil, fmt.Errorf("open upload source: %w", err)
		}
		defer f.Close()

		part, err := mw.CreateFormFile("file", filepath.Base(fileRef))
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, fmt.Errorf("copy upload source: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	resourceType := opts.ResourceType
	if resourceType == "" {
		resourceType = "auto"
	}
	url := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/%s/upload", c.cloudName, resourceType)

	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		var ce cloudinaryError
		_ = json.Unmarshal(raw, &ce)
		if ce.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary upload: %s", ce.Error.Message)
		}
		return nil, fmt.Errorf("cloudinary upload http %d", resp.StatusCode)
	}

	var result models.UploadResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &result, nil
}

// sign implements Cloudinary request signing: params sorted by key, joined
// k=v with &, secret appended, SHA-1 hex over the whole string.
func (c *CloudinaryClient) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	h := sha1.New()
	h.Write([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(h.Sum(nil))
}

func isRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "s3://") ||
		strings.HasPrefix(ref, "data:")
}
