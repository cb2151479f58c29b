package service

import (
	"strings"
	"time"

	"github.com/foodie-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// CaptchaChallenge 图片验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captchaId"`
	ImageBase64 string `json:"image"`
}

// CaptchaService 登录图片验证码
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = 10240
	}
	expire := cfg.ExpireSeconds
	if expire <= 0 {
		expire = 300
	}
	return &CaptchaService{
		cfg:   cfg,
		store: base64Captcha.NewMemoryStore(maxStore, time.Duration(expire)*time.Second),
	}
}

// LoginEnabled 登录是否需要验证码
func (s *CaptchaService) LoginEnabled() bool {
	return s != nil && s.cfg.LoginEnabled
}

// Generate 生成图片验证码
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	if !s.LoginEnabled() {
		return nil, ErrCaptchaDisabled
	}
	driver := base64Captcha.NewDriverString(
		positiveOrDefault(s.cfg.Height, 80),
		positiveOrDefault(s.cfg.Width, 240),
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		positiveOrDefault(s.cfg.Length, 5),
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.store).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{CaptchaID: strings.TrimSpace(id), ImageBase64: strings.TrimSpace(b64s)}, nil
}

// Verify 校验验证码，未启用时直接通过
func (s *CaptchaService) Verify(id, code string) error {
	if !s.LoginEnabled() {
		return nil
	}
	id = strings.TrimSpace(id)
	code = strings.TrimSpace(code)
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func positiveOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
