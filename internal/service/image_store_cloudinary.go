package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryAPI Cloudinary 上传接口
type CloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// NewCloudinaryAPI 使用账号凭据创建客户端
func NewCloudinaryAPI(cfg config.CloudinaryConfig) (CloudinaryAPI, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &cld.Upload, nil
}

// cloudinaryBase 两种 Cloudinary 模式共用的删除与结果处理
type cloudinaryBase struct {
	api    CloudinaryAPI
	folder string
}

func (b cloudinaryBase) params(key string) uploader.UploadParams {
	return uploader.UploadParams{
		PublicID: strings.TrimSuffix(key, filepath.Ext(key)),
		Folder:   b.folder,
	}
}

func (b cloudinaryBase) result(res *uploader.UploadResult) (*models.UploadedImage, error) {
	if res == nil || res.SecureURL == "" || res.PublicID == "" {
		return nil, errors.New("cloudinary upload returned no asset")
	}
	return &models.UploadedImage{URL: res.SecureURL, StorageKey: res.PublicID}, nil
}

// Delete 仅当 Cloudinary 返回 ok 时视为成功
func (b cloudinaryBase) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrFilenameRequired
	}
	res, err := b.api.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return err
	}
	if res == nil {
		return ErrImageNotFound
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found", "":
		return ErrImageNotFound
	default:
		logger.Warnw("cloudinary_destroy_unexpected_result", "public_id", key, "result", res.Result)
		return ErrImageNotFound
	}
}

// CloudinaryStreamStore 直接从内存流式上传
type CloudinaryStreamStore struct {
	cloudinaryBase
}

// NewCloudinaryStreamStore 创建流式上传后端
func NewCloudinaryStreamStore(api CloudinaryAPI, folder string) *CloudinaryStreamStore {
	return &CloudinaryStreamStore{cloudinaryBase{api: api, folder: folder}}
}

// Name 后端名称
func (s *CloudinaryStreamStore) Name() string {
	return "cloudinary_stream"
}

// Save 上传内存中的图片
func (s *CloudinaryStreamStore) Save(ctx context.Context, obj ImageObject) (*models.UploadedImage, error) {
	res, err := s.api.Upload(ctx, bytes.NewReader(obj.Data), s.params(obj.Key))
	if err != nil {
		return nil, err
	}
	return s.result(res)
}

// CloudinaryStagedStore 先落盘到暂存目录再按路径上传
type CloudinaryStagedStore struct {
	cloudinaryBase
	stagingDir string
}

// NewCloudinaryStagedStore 创建暂存上传后端
func NewCloudinaryStagedStore(api CloudinaryAPI, folder, stagingDir string) *CloudinaryStagedStore {
	if strings.TrimSpace(stagingDir) == "" {
		stagingDir = "uploads"
	}
	return &CloudinaryStagedStore{cloudinaryBase: cloudinaryBase{api: api, folder: folder}, stagingDir: stagingDir}
}

// Name 后端名称
func (s *CloudinaryStagedStore) Name() string {
	return "cloudinary_staged"
}

// Save 暂存文件无论成功与否都会被删除
func (s *CloudinaryStagedStore) Save(ctx context.Context, obj ImageObject) (*models.UploadedImage, error) {
	if err := os.MkdirAll(s.stagingDir, 0o755); err != nil {
		return nil, err
	}
	staged, err := os.CreateTemp(s.stagingDir, "stage-*"+filepath.Ext(obj.Key))
	if err != nil {
		return nil, err
	}
	stagedPath := staged.Name()
	defer func() {
		if rmErr := os.Remove(stagedPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.Warnw("cloudinary_staging_cleanup_failed", "path", stagedPath, "error", rmErr)
		}
	}()
	if _, err := staged.Write(obj.Data); err != nil {
		_ = staged.Close()
		return nil, err
	}
	if err := staged.Close(); err != nil {
		return nil, err
	}

	res, err := s.api.Upload(ctx, stagedPath, s.params(obj.Key))
	if err != nil {
		return nil, err
	}
	return s.result(res)
}
