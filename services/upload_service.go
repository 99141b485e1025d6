package services

import (
	"context"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	presignExpiry = 15 * time.Minute
	objectPrefix  = "products/"
)

type UploadResult struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	FileSize string `json:"file_size"`
	FileType string `json:"file_type"`
}

type PresignResult struct {
	UploadURL string            `json:"upload_url"`
	Headers   map[string]string `json:"headers"`
	FileURL   string            `json:"file_url"`
	Key       string            `json:"key"`
	ExpiresIn int               `json:"expires_in"`
}

// UploadService stores dashboard images in S3, or on local disk when no
// bucket is configured.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader, baseURL string) (*UploadResult, *ServiceError)
	Presign(ctx context.Context, fileName, contentType string) (*PresignResult, *ServiceError)
}

type uploadServiceImpl struct {
	store    aws_pkg.ObjectStore
	localDir string
	maxBytes int64
	logger   *zap.Logger
}

// NewUploadService creates an UploadService. A nil store writes into
// localDir, which the router serves under /uploads.
func NewUploadService(store aws_pkg.ObjectStore, localDir string, maxBytes int64, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{store: store, localDir: localDir, maxBytes: maxBytes, logger: logger}
}

func (s *uploadServiceImpl) Upload(ctx context.Context, file *multipart.FileHeader, baseURL string) (*UploadResult, *ServiceError) {
	if file == nil {
		return nil, badRequest("no_file_uploaded")
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, &ServiceError{StatusCode: http.StatusRequestEntityTooLarge, Message: "file_too_large"}
	}

	src, err := file.Open()
	if err != nil {
		return nil, unexpected(err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, unexpected(err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, unprocessable("only_images_allowed")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, unexpected(err)
	}

	name := "file-" + uuid.NewString() + mtype.Extension()
	contentType := mtype.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	var url string
	if s.store != nil {
		url, err = s.store.PutObject(ctx, objectPrefix+name, contentType, src, file.Size)
	} else {
		url, err = s.saveLocal(src, name, baseURL)
	}
	if err != nil {
		s.logger.Error("Failed to store upload", zap.String("file_name", file.Filename), zap.Error(err))
		return nil, unexpected(err)
	}

	s.logger.Info("File uploaded", zap.String("file_name", name), zap.Int64("size", file.Size))
	return &UploadResult{
		FileURL:  url,
		FileName: name,
		FileSize: FormatFileSize(file.Size),
		FileType: contentType,
	}, nil
}

func (s *uploadServiceImpl) Presign(ctx context.Context, fileName, contentType string) (*PresignResult, *ServiceError) {
	if s.store == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "presign_unavailable"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, unprocessable("only_images_allowed")
	}

	key := objectPrefix + "file-" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	uploadURL, headers, err := s.store.PresignPut(ctx, key, contentType, presignExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.Error(err))
		return nil, unexpected(err)
	}
	return &PresignResult{
		UploadURL: uploadURL,
		Headers:   headers,
		FileURL:   s.store.ObjectURL(key),
		Key:       key,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

func (s *uploadServiceImpl) saveLocal(src io.Reader, name, baseURL string) (string, error) {
	if err := os.MkdirAll(s.localDir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(s.localDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return strings.TrimSuffix(baseURL, "/") + "/uploads/" + name, nil
}

var fileSizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count with two decimals at most,
// e.g. 1536 -> "1.5 KB".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(size)) / math.Log(1024)))
	if i >= len(fileSizeUnits) {
		i = len(fileSizeUnits) - 1
	}
	value := math.Round(float64(size)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + fileSizeUnits[i]
}
