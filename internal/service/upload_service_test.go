package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/gym-management-api/pkg/errors"
	"github.com/noah-isme/gym-management-api/pkg/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 17)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(13))
	buf.Write(ihdr)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(ihdr))
	return buf.Bytes()
}

func memoryUpload(name string, data []byte) Upload {
	return Upload{
		Filename: name,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func newTestUploadService(t *testing.T, cfg UploadServiceConfig) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewUploadService(store, NewFileLocator("/uploads"), cfg, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 9, 10, 0, 0, 0, time.UTC) }
	return svc, dir
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	require.NoError(t, filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	}))
	return files
}

func TestUploadServiceStoresProfilePhoto(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, ImageMaxDimension: 1024})

	file, err := svc.Store(context.Background(), KindProfilePhoto, memoryUpload("My Photo.PNG", pngBytes(t, 40, 20)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, "My Photo.PNG", file.Filename)
	assert.True(t, strings.HasPrefix(file.URL, "/uploads/profile-photos/2024/07/my_photo-"), file.URL)
	assert.True(t, strings.HasSuffix(file.URL, ".png"))

	files := storedFiles(t, dir)
	require.Len(t, files, 1)
	assert.Equal(t, strings.TrimPrefix(file.URL, "/uploads/"), files[0])
}

func TestUploadServiceDownscalesLargeImages(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, ImageMaxDimension: 100})

	file, err := svc.Store(context.Background(), KindEquipmentImage, memoryUpload("rack.png", pngBytes(t, 300, 150)))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(file.URL, "/uploads/"))))
	require.NoError(t, err)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
	assert.Equal(t, int64(len(raw)), file.Size)
}

func TestUploadServiceRejectsHugeImageDimensions(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, ImageMaxDimension: 1024})

	_, err := svc.Store(context.Background(), KindProfilePhoto, memoryUpload("bomb.png", pngHeader(16000, 16000)))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.Status)
	assert.Equal(t, []string{"image dimensions 16000x16000 exceed the 40 megapixel limit"}, appErr.Details)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadServiceRejectsOversizedFiles(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 16})

	_, err := svc.Store(context.Background(), KindProfilePhoto, memoryUpload("big.png", pngBytes(t, 10, 10)))
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErrors.FromError(err).Status)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadServiceRejectsUnsupportedTypes(t *testing.T) {
	svc, _ := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20})

	_, err := svc.Store(context.Background(), KindProfilePhoto, memoryUpload("notes.png", []byte("plain text pretending to be an image")))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, appErrors.FromError(err).Status)

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	_, err = svc.Store(context.Background(), KindProfilePhoto, memoryUpload("cert.pdf", pdf))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedMedia)

	file, err := svc.Store(context.Background(), KindCertificate, memoryUpload("cert.pdf", pdf))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.MimeType)
}

func TestUploadServiceStoreManyRollsBackOnFailure(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, MaxCertificates: 3})

	_, err := svc.StoreMany(context.Background(), KindCertificate, []Upload{
		memoryUpload("a.png", pngBytes(t, 8, 8)),
		memoryUpload("b.txt", []byte("not allowed")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedMedia)
	assert.Empty(t, storedFiles(t, dir))
}

func TestUploadServiceStoreManyKeepsOrder(t *testing.T) {
	svc, dir := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, MaxCertificates: 3})

	files, err := svc.StoreMany(context.Background(), KindCertificate, []Upload{
		memoryUpload("first.png", pngBytes(t, 8, 8)),
		memoryUpload("second.pdf", []byte("%PDF-1.7\n")),
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "first.png", files[0].Filename)
	assert.Equal(t, "second.pdf", files[1].Filename)
	assert.Len(t, storedFiles(t, dir), 2)
}

func TestUploadServiceStoreManyLimits(t *testing.T) {
	svc, _ := newTestUploadService(t, UploadServiceConfig{MaxFileSize: 1 << 20, MaxCertificates: 1})

	_, err := svc.StoreMany(context.Background(), KindCertificate, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	img := pngBytes(t, 4, 4)
	_, err = svc.StoreMany(context.Background(), KindCertificate, []Upload{memoryUpload("a.png", img), memoryUpload("b.png", img)})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "at most 1")
}

func TestFileLocatorKey(t *testing.T) {
	locator := NewFileLocator("/uploads/")

	key, ok := locator.Key("/uploads/certificates/2024/01/a.pdf")
	assert.True(t, ok)
	assert.Equal(t, "certificates/2024/01/a.pdf", key)
	assert.Equal(t, "/uploads/certificates/2024/01/a.pdf", locator.URL(key))

	_, ok = locator.Key("https://example.com/photo.png")
	assert.False(t, ok)
	_, ok = locator.Key("/uploads/../etc/passwd")
	assert.False(t, ok)
}
