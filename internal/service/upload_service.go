package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/config"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/dto"
)

// ── upload errors ──

var (
	ErrUploadEmpty           = errors.New("no se recibió ningún archivo")
	ErrUploadTooLarge        = errors.New("el archivo excede el tamaño máximo permitido")
	ErrUploadUnsupportedType = errors.New("formato de imagen no soportado, use JPG, PNG o WEBP")
	ErrUploadForbidden       = errors.New("acceso denegado")
	ErrUploadNotFound        = errors.New("archivo no encontrado")
)

// PhotoDir subdirectory of the upload dir holding beneficiary photos
const PhotoDir = "beneficiaries"

// ImagesPrefix public route prefix of stored files
const ImagesPrefix = "/images/"

const defaultUploadMaxSize = 5 << 20

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadService beneficiary photo storage on the local filesystem
type UploadService interface {
	// SavePhoto stores an image and returns its public URL
	SavePhoto(ctx context.Context, reader io.Reader, size int64) (*dto.UploadPhotoResponse, error)
	// Open resolves a public path to a stored file and its content type
	Open(ctx context.Context, rel string) (string, string, error)
}

type uploadService struct {
	dir     string
	maxSize int64
	logger  *zap.Logger
}

// NewUploadService creates an UploadService
func NewUploadService(cfg *config.UploadConfig, logger *zap.Logger) UploadService {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultUploadMaxSize
	}
	return &uploadService{dir: cfg.Dir, maxSize: maxSize, logger: logger}
}

// ────────────────────── SavePhoto ──────────────────────

func (s *uploadService) SavePhoto(_ context.Context, reader io.Reader, size int64) (*dto.UploadPhotoResponse, error) {
	if size > s.maxSize {
		return nil, ErrUploadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(reader, s.maxSize+1))
	if err != nil {
		s.logger.Error("read upload failed", zap.Error(err))
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrUploadEmpty
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrUploadTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedPhotoTypes[mtype.String()] {
		return nil, ErrUploadUnsupportedType
	}

	dir := filepath.Join(s.dir, PhotoDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("create upload dir failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}

	name := uuid.NewString() + mtype.Extension()
	if err := writeFileAtomic(filepath.Join(dir, name), data); err != nil {
		s.logger.Error("store photo failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("photo stored", zap.String("name", name), zap.Int("size", len(data)))
	return &dto.UploadPhotoResponse{
		URL:         ImagesPrefix + path.Join(PhotoDir, name),
		ContentType: mtype.String(),
		Size:        int64(len(data)),
	}, nil
}

// ────────────────────── Open ──────────────────────

func (s *uploadService) Open(_ context.Context, rel string) (string, string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", "", err
	}
	full, err := filepath.Abs(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/"))))
	if err != nil {
		return "", "", err
	}
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", "", ErrUploadForbidden
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", "", ErrUploadNotFound
	}

	contentType, ok := contentTypeByExt[strings.ToLower(filepath.Ext(full))]
	if !ok {
		contentType = "application/octet-stream"
	}
	return full, contentType, nil
}

// writeFileAtomic temp file plus rename, readers never see a partial image
func writeFileAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}
