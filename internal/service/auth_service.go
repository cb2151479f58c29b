package service

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// TokenDenylist 已吊销令牌存储
type TokenDenylist interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// RegisterInput 注册参数
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput 登录参数
type LoginInput struct {
	Email       string
	Password    string
	CaptchaID   string
	CaptchaCode string
}

// LoginResult 登录结果
type LoginResult struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
}

// AuthService 认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	tokens    *TokenService
	denylist  TokenDenylist
	captcha   *CaptchaService
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, tokens *TokenService, denylist TokenDenylist, captcha *CaptchaService) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		tokens:    tokens,
		denylist:  denylist,
		captcha:   captcha,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Register 注册管理员，首个管理员为超级管理员
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Admin, error) {
	if s.cfg != nil && !s.cfg.Auth.AllowRegistration {
		return nil, ErrRegistrationClosed
	}
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, ErrMissingRegisterFields
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	policy := config.PasswordPolicyConfig{}
	if s.cfg != nil {
		policy = s.cfg.Security.PasswordPolicy
	}
	if err := validatePassword(policy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := constants.RoleAdmin
	if count == 0 {
		role = constants.RoleSuperAdmin
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}
	if admin.Role == constants.RoleSuperAdmin {
		if err := s.settleFirstAdmin(ctx, admin); err != nil {
			return nil, err
		}
	}
	logger.Infow("admin_registered", "admin_id", admin.ID, "role", admin.Role)
	return admin, nil
}

// settleFirstAdmin 并发注册时只保留最早创建的管理员为超级管理员
func (s *AuthService) settleFirstAdmin(ctx context.Context, admin *models.Admin) error {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 || admins[0].ID == admin.ID {
		return nil
	}
	if err := s.adminRepo.UpdateRole(ctx, admin.ID, constants.RoleAdmin); err != nil {
		return err
	}
	logger.Warnw("super_admin_demoted", "admin_id", admin.ID, "first_admin_id", admins[0].ID)
	admin.Role = constants.RoleAdmin
	return nil
}

// Login 管理员登录
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingLoginFields
	}
	if err := s.captcha.Verify(input.CaptchaID, input.CaptchaCode); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(admin.PasswordHash, input.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate 校验令牌并检查是否已吊销
func (s *AuthService) Authenticate(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if s.denylist != nil {
		revoked, err := s.denylist.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			// Redis 不可用时不阻断已签名的合法令牌
			logger.Warnw("auth_denylist_lookup_failed", "error", err)
			return claims, nil
		}
		if revoked {
			return nil, ErrTokenInvalid
		}
	}
	return claims, nil
}

// Profile 获取当前管理员信息
func (s *AuthService) Profile(ctx context.Context, adminID string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// Logout 吊销当前令牌
func (s *AuthService) Logout(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || s.denylist == nil {
		return nil
	}
	return s.denylist.RevokeToken(ctx, claims.ID, s.tokens.RemainingTTL(claims))
}

// ListAdmins 管理员列表
func (s *AuthService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return s.adminRepo.List(ctx)
}

// EnsureDefaultAdmin 库中没有管理员时创建默认超级管理员
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if err := checkPasswordLength(password); err != nil {
		return false, err
	}
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if strings.TrimSpace(name) == "" {
		name = "Super Admin"
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.Admin{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleSuperAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	if err := s.settleFirstAdmin(ctx, admin); err != nil {
		return false, err
	}
	logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
