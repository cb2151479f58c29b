package public

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 管理员注册请求
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest 管理员登录请求
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// Register 管理员注册
// @Summary      Register admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  RegisterRequest  true  "Register payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondErrorWithMsg(c, response.CodeBadRequest, "Please fill all fields", err)
		return
	}
	admin, err := h.AuthService.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	summary := admin.Summary()
	summary.Role = ""
	response.Created(c, "Admin registered successfully", gin.H{"admin": summary})
}

// Login 管理员登录
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  LoginRequest  true  "Login payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      429  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondErrorWithMsg(c, response.CodeBadRequest, "Email and password are required", err)
		return
	}
	result, err := h.AuthService.Login(c.Request.Context(), service.LoginInput{
		Email:       req.Email,
		Password:    req.Password,
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	shared.RequestLog(c).Infow("admin_login", "admin_id", result.Admin.ID, "client_ip", c.ClientIP())
	response.Success(c, response.CodeOK, "Login successful", gin.H{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"admin":     result.Admin.Summary(),
	})
}

// Captcha 获取登录图片验证码
// @Summary      Login captcha
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /auth/captcha [get]
func (h *Handler) Captcha(c *gin.Context) {
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"captcha": challenge})
}
