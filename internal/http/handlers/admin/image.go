package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Base64ImageRequest base64 上传模式的请求体
type Base64ImageRequest struct {
	Image string `json:"image"`
}

// DeleteImageRequest 删除图片请求
type DeleteImageRequest struct {
	Filename string `json:"filename"`
}

// UploadImage 上传菜品图片
// @Summary      Upload image
// @Description  multipart 模式读取表单字段 image；base64 模式读取 JSON {image: data URI}
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  false  "Image file"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /images/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	payload, err := h.readImagePayload(c)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	image, err := h.UploadService.Upload(c.Request.Context(), payload)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, uploadMessage(h.UploadService.Backend()), gin.H{
		"imageUrl": image.URL,
		"filename": image.StorageKey,
	})
}

// DeleteImage 删除已上传图片
// @Summary      Delete image
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  DeleteImageRequest  true  "Storage key"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /images/delete [delete]
func (h *Handler) DeleteImage(c *gin.Context) {
	var req DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrFilenameRequired)
		return
	}
	if err := h.UploadService.Delete(c.Request.Context(), req.Filename); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, deleteMessage(h.UploadService.Backend()), nil)
}

func (h *Handler) readImagePayload(c *gin.Context) (service.ImagePayload, error) {
	if h.UploadService.InputMode() == constants.UploadInputBase64 {
		var req Base64ImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				return service.ImagePayload{}, service.ErrFileTooLarge
			}
			return service.ImagePayload{}, service.ErrImageMissing
		}
		return service.PayloadFromDataURI(req.Image), nil
	}

	field := strings.TrimSpace(h.Config.Upload.Field)
	if field == "" {
		field = "image"
	}
	file, err := c.FormFile(field)
	if err != nil {
		if isBodyTooLarge(err) {
			return service.ImagePayload{}, service.ErrFileTooLarge
		}
		return service.ImagePayload{}, service.ErrImageMissing
	}
	return service.PayloadFromMultipart(file), nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func uploadMessage(backend string) string {
	if backend == constants.UploadBackendLocal {
		return "Image uploaded successfully"
	}
	return "Image uploaded to Cloudinary successfully"
}

func deleteMessage(backend string) string {
	if backend == constants.UploadBackendLocal {
		return "Image deleted successfully"
	}
	return "Image deleted from Cloudinary successfully"
}
