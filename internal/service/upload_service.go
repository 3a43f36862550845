package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/gym-management-api/internal/dto"
	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/storage"
)

// UploadKind groups stored files under a key prefix.
type UploadKind string

// Upload kinds.
const (
	KindProfilePhoto   UploadKind = "profile-photos"
	KindCertificate    UploadKind = "certificates"
	KindEquipmentImage UploadKind = "equipment"
)

const sniffLen = 512

// maxImagePixels bounds the decoded size of an image accepted for resizing.
const maxImagePixels = 40_000_000

var (
	imageMIMEs       = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	certificateMIMEs = append(append([]string{}, imageMIMEs...), "application/pdf")
)

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadServiceConfig holds upload limits.
type UploadServiceConfig struct {
	MaxFileSize       int64
	MaxCertificates   int
	ImageMaxDimension int
}

// FileLocator maps storage keys to public URLs and back.
type FileLocator struct {
	baseURL string
}

// NewFileLocator builds a locator for the given public prefix, e.g. "/uploads"
// or "https://cdn.example.com/gym".
func NewFileLocator(baseURL string) *FileLocator {
	return &FileLocator{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL returns the public URL of key.
func (l *FileLocator) URL(key string) string {
	return l.baseURL + "/" + key
}

// Key extracts the storage key from a public URL. Files outside the managed
// prefix report false.
func (l *FileLocator) Key(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	prefix := l.baseURL + "/"
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	key, err := storage.CleanKey(strings.TrimPrefix(ref, prefix))
	if err != nil {
		return "", false
	}
	return key, true
}

// UploadService validates, normalises and stores uploaded files.
type UploadService struct {
	store   storage.Store
	locator *FileLocator
	cfg     UploadServiceConfig
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploadService constructs an UploadService.
func NewUploadService(store storage.Store, locator *FileLocator, cfg UploadServiceConfig, metrics *MetricsService, logger *zap.Logger) *UploadService {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 * 1024 * 1024
	}
	if cfg.MaxCertificates <= 0 {
		cfg.MaxCertificates = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, locator: locator, cfg: cfg, metrics: metrics, logger: logger, now: time.Now}
}

// Store saves a single file of the given kind.
func (s *UploadService) Store(ctx context.Context, kind UploadKind, upload Upload) (dto.UploadedFile, error) {
	file, err := s.put(ctx, kind, upload)
	s.metrics.RecordUpload(string(kind), file.Size, err)
	return file, err
}

// StoreMany saves a batch concurrently. Either every file is stored or none is:
// on failure the files already written are removed again.
func (s *UploadService) StoreMany(ctx context.Context, kind UploadKind, uploads []Upload) ([]dto.UploadedFile, error) {
	if len(uploads) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "No files uploaded")
	}
	if len(uploads) > s.cfg.MaxCertificates {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Too many files: at most %d allowed", s.cfg.MaxCertificates))
	}

	results := make([]dto.UploadedFile, len(uploads))
	stored := make([]bool, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i := range uploads {
		g.Go(func() error {
			file, err := s.Store(gctx, kind, uploads[i])
			if err != nil {
				return err
			}
			results[i] = file
			stored[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		for i, ok := range stored {
			if !ok {
				continue
			}
			if key, managed := s.locator.Key(results[i].URL); managed {
				if delErr := s.store.Delete(cleanupCtx, key); delErr != nil {
					s.logger.Warn("failed to roll back stored upload", zap.String("key", key), zap.Error(delErr))
				}
			}
		}
		return nil, err
	}
	return results, nil
}

func (s *UploadService) put(ctx context.Context, kind UploadKind, upload Upload) (dto.UploadedFile, error) {
	if upload.Open == nil {
		return dto.UploadedFile{}, appErrors.Clone(appErrors.ErrValidation, "No file uploaded")
	}
	if upload.Size > s.cfg.MaxFileSize {
		return dto.UploadedFile{}, s.tooLarge()
	}

	rc, err := upload.Open()
	if err != nil {
		return dto.UploadedFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, s.cfg.MaxFileSize+1))
	if err != nil {
		return dto.UploadedFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return dto.UploadedFile{}, s.tooLarge()
	}
	if len(data) == 0 {
		return dto.UploadedFile{}, appErrors.Clone(appErrors.ErrValidation, "Uploaded file is empty")
	}

	mime := detectMime(data)
	if !allowedMime(kind, mime) {
		return dto.UploadedFile{}, appErrors.WithDetails(appErrors.ErrUnsupportedMedia, fmt.Sprintf("%s is not an accepted file type", mime))
	}

	if data, err = s.downscale(data, mime); err != nil {
		return dto.UploadedFile{}, err
	}

	key := s.objectKey(kind, upload.Filename, mime)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mime); err != nil {
		return dto.UploadedFile{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}

	s.logger.Debug("upload stored", zap.String("kind", string(kind)), zap.String("key", key), zap.Int("size", len(data)))
	return dto.UploadedFile{
		URL:      s.locator.URL(key),
		Filename: path.Base(strings.ReplaceAll(upload.Filename, "\\", "/")),
		Size:     int64(len(data)),
		MimeType: mime,
	}, nil
}

func (s *UploadService) tooLarge() error {
	return appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("File exceeds the %d MB limit", s.cfg.MaxFileSize/(1024*1024)))
}

// downscale shrinks JPEG and PNG images that exceed the configured dimension.
func (s *UploadService) downscale(data []byte, mime string) ([]byte, error) {
	var format imaging.Format
	switch mime {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}
	limit := s.cfg.ImageMaxDimension
	if limit <= 0 {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrUnsupportedMedia, "image could not be decoded")
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, appErrors.WithDetails(appErrors.ErrPayloadTooLarge,
			fmt.Sprintf("image dimensions %dx%d exceed the %d megapixel limit", cfg.Width, cfg.Height, maxImagePixels/1_000_000))
	}
	if cfg.Width <= limit && cfg.Height <= limit {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrUnsupportedMedia, "image could not be decoded")
	}
	resized := imaging.Fit(img, limit, limit, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resize image")
	}
	return buf.Bytes(), nil
}

func (s *UploadService) objectKey(kind UploadKind, filename, mime string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	name := sanitize(base)
	if name == "" {
		name = "file"
	}
	if len(name) > 40 {
		name = name[:40]
	}
	now := s.now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s-%s%s", kind, now.Year(), int(now.Month()), name, randomSuffix(), mimeExtension(mime))
}

func detectMime(data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	mime := http.DetectContentType(head)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}

func allowedMime(kind UploadKind, mime string) bool {
	allowed := imageMIMEs
	if kind == KindCertificate {
		allowed = certificateMIMEs
	}
	for _, m := range allowed {
		if m == mime {
			return true
		}
	}
	return false
}

func mimeExtension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}

func sanitize(raw string) string {
	raw = strings.ToLower(raw)
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func randomSuffix() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
