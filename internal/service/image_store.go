package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"github.com/google/uuid"
)

// ImageObject 待写入存储后端的图片
type ImageObject struct {
	Key         string
	Data        []byte
	ContentType string
}

// ImageStore 图片存储后端
type ImageStore interface {
	Name() string
	Save(ctx context.Context, obj ImageObject) (*models.UploadedImage, error)
	Delete(ctx context.Context, key string) error
}

// NewImageStore 按配置创建唯一启用的存储后端
func NewImageStore(cfg config.UploadConfig) (ImageStore, error) {
	switch cfg.Backend {
	case "", constants.UploadBackendLocal:
		return NewLocalImageStore(cfg.LocalDir, cfg.PublicURLPrefix)
	case constants.UploadBackendCloudinaryStream, constants.UploadBackendCloudinaryStaged:
		api, err := NewCloudinaryAPI(cfg.Cloudinary)
		if err != nil {
			return nil, err
		}
		if cfg.Backend == constants.UploadBackendCloudinaryStaged {
			return NewCloudinaryStagedStore(api, cfg.Cloudinary.Folder, cfg.StagingDir), nil
		}
		return NewCloudinaryStreamStore(api, cfg.Cloudinary.Folder), nil
	default:
		return nil, fmt.Errorf("unsupported upload backend: %s", cfg.Backend)
	}
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// newImageKey 生成 <毫秒时间戳>-<随机串><扩展名>
func newImageKey(contentType string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, imageExtensions[contentType])
}
