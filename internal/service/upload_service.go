package service

import (
	"context"
	"encoding/base64"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"

	"github.com/gabriel-vasile/mimetype"
)

// ImagePayload 已从请求中提取的图片
type ImagePayload struct {
	Present      bool
	DeclaredType string
	Size         int64
	open         func() ([]byte, error)
}

// UploadService 图片上传流水线：校验 -> 生成 key -> 写入后端
type UploadService struct {
	cfg     config.UploadConfig
	store   ImageStore
	allowed map[string]struct{}
	maxSize int64
	timeout time.Duration
}

// NewUploadService 创建图片上传服务
func NewUploadService(cfg config.UploadConfig, store ImageStore) *UploadService {
	allowedTypes := cfg.AllowedTypes
	if len(allowedTypes) == 0 {
		allowedTypes = constants.AllowedImageTypes
	}
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = constants.MaxImageSize
	}
	return &UploadService{
		cfg:     cfg,
		store:   store,
		allowed: allowed,
		maxSize: maxSize,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Backend 当前存储后端
func (s *UploadService) Backend() string {
	return s.store.Name()
}

// InputMode 当前输入方式
func (s *UploadService) InputMode() string {
	if s.cfg.InputMode == "" {
		return constants.UploadInputMultipart
	}
	return s.cfg.InputMode
}

// MaxSize 单文件大小上限
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// PayloadFromMultipart 从 multipart 文件构建载荷
func PayloadFromMultipart(file *multipart.FileHeader) ImagePayload {
	if file == nil {
		return ImagePayload{}
	}
	return ImagePayload{
		Present:      true,
		DeclaredType: file.Header.Get("Content-Type"),
		Size:         file.Size,
		open: func() ([]byte, error) {
			src, err := file.Open()
			if err != nil {
				return nil, err
			}
			defer src.Close()
			return io.ReadAll(src)
		},
	}
}

// PayloadFromDataURI 从 data:image/...;base64, 字符串构建载荷
func PayloadFromDataURI(dataURI string) ImagePayload {
	dataURI = strings.TrimSpace(dataURI)
	if dataURI == "" {
		return ImagePayload{}
	}
	declared := ""
	encoded := dataURI
	if strings.HasPrefix(dataURI, "data:") {
		comma := strings.IndexByte(dataURI, ',')
		if comma < 0 {
			return ImagePayload{Present: true}
		}
		meta := dataURI[len("data:"):comma]
		encoded = dataURI[comma+1:]
		if !strings.HasSuffix(meta, ";base64") {
			return ImagePayload{Present: true}
		}
		declared = strings.TrimSuffix(meta, ";base64")
	}
	return ImagePayload{
		Present:      true,
		DeclaredType: declared,
		Size:         base64DecodedSize(encoded),
		open: func() ([]byte, error) {
			data, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return nil, ErrInvalidFileType
			}
			return data, nil
		},
	}
}

// Upload 按 存在性 -> MIME -> 大小 的顺序校验后写入后端
func (s *UploadService) Upload(ctx context.Context, payload ImagePayload) (*models.UploadedImage, error) {
	if !payload.Present || payload.open == nil {
		return nil, ErrImageMissing
	}
	declared := normalizeContentType(payload.DeclaredType)
	if !s.isAllowed(declared) {
		return nil, ErrInvalidFileType
	}
	if payload.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	data, err := payload.open()
	if err != nil {
		return nil, err
	}
	if int64(len(data)) == 0 {
		return nil, ErrImageMissing
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}
	// 声明类型可伪造，再按文件头识别
	sniffed := normalizeContentType(mimetype.Detect(data).String())
	if !s.isAllowed(sniffed) {
		return nil, ErrInvalidFileType
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	image, err := s.store.Save(ctx, ImageObject{
		Key:         newImageKey(sniffed),
		Data:        data,
		ContentType: sniffed,
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("image_uploaded", "backend", s.store.Name(), "key", image.StorageKey, "size", len(data))
	return image, nil
}

// Delete 删除已存储图片
func (s *UploadService) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrFilenameRequired
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	logger.Infow("image_deleted", "backend", s.store.Name(), "key", key)
	return nil
}

func (s *UploadService) isAllowed(contentType string) bool {
	if contentType == "" {
		return false
	}
	_, ok := s.allowed[contentType]
	return ok
}

func (s *UploadService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// base64DecodedSize 不解码估算原始字节数
func base64DecodedSize(encoded string) int64 {
	n := len(encoded)
	padding := 0
	if strings.HasSuffix(encoded, "==") {
		padding = 2
	} else if strings.HasSuffix(encoded, "=") {
		padding = 1
	}
	size := n/4*3 - padding
	if size < 0 {
		return 0
	}
	return int64(size)
}

func normalizeContentType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.IndexByte(value, ';'); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}
