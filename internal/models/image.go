package models

// UploadedImage 已存储的图片
type UploadedImage struct {
	URL        string `json:"imageUrl"`
	StorageKey string `json:"filename"` // 本地文件名或 Cloudinary public_id
}
