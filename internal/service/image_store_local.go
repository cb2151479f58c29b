package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/foodie-next/internal/models"
)

// LocalImageStore 本地磁盘存储，通过 /public 静态目录对外提供
type LocalImageStore struct {
	root      string
	urlPrefix string
}

// NewLocalImageStore 创建本地存储，目录在首次写入时创建
func NewLocalImageStore(dir, urlPrefix string) (*LocalImageStore, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "public/images"
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve image dir: %w", err)
	}
	if strings.TrimSpace(urlPrefix) == "" {
		urlPrefix = "/public/images"
	}
	return &LocalImageStore{root: filepath.Clean(root), urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Name 后端名称
func (s *LocalImageStore) Name() string {
	return "local"
}

// Root 存储根目录
func (s *LocalImageStore) Root() string {
	return s.root
}

// Save 先写临时文件再重命名，失败时不留下半成品
func (s *LocalImageStore) Save(ctx context.Context, obj ImageObject) (*models.UploadedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.resolve(obj.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(obj.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	return &models.UploadedImage{
		URL:        path.Join(s.urlPrefix, obj.Key),
		StorageKey: obj.Key,
	}, nil
}

// Delete 删除文件，路径越界返回 ErrForbiddenPath，不存在返回 ErrImageNotFound
func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}

// resolve 将 key 解析为根目录下的绝对路径，必须是根目录的严格子路径
func (s *LocalImageStore) resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrFilenameRequired
	}
	if filepath.IsAbs(key) || strings.ContainsRune(key, 0) {
		return "", ErrForbiddenPath
	}
	target := filepath.Clean(filepath.Join(s.root, key))
	rel, err := filepath.Rel(s.root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrForbiddenPath
	}
	return target, nil
}
