package authz

import (
	"fmt"
	"strings"

	"github.com/foodie-next/internal/constants"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
)

const rolePrefix = "role:"

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy 权限策略
type Policy struct {
	Object string
	Action string
}

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/api/auth/profile", Action: "GET"},
				{Object: "/api/auth/logout", Action: "POST"},
				{Object: "/api/products", Action: "POST"},
				{Object: "/api/products/:id", Action: "*"},
				{Object: "/api/orders", Action: "GET"},
				{Object: "/api/orders/:id", Action: "*"},
				{Object: "/api/orders/:id/status", Action: "PATCH"},
				{Object: "/api/messages", Action: "GET"},
				{Object: "/api/messages/:id", Action: "*"},
				{Object: "/api/messages/:id/reply", Action: "PUT"},
				{Object: "/api/messages/:id/read", Action: "PUT"},
				{Object: "/api/images/upload", Action: "POST"},
				{Object: "/api/images/delete", Action: "DELETE"},
				{Object: "/api/admin/events", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleSuperAdmin,
			Inherits: []string{constants.RoleAdmin},
			Policies: []Policy{
				{Object: "/api/auth/admins", Action: "GET"},
			},
		},
	}
}

// Service Casbin 授权服务
// 策略为代码内置，启动时加载到内存
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载预置角色
func NewService() (*Service, error) {
	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)

	svc := &Service{enforcer: enforcer}
	if err := svc.loadSeeds(BuiltinRoleSeeds()); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) loadSeeds(seeds []RoleSeed) error {
	for _, seed := range seeds {
		role := SubjectForRole(seed.Role)
		for _, parent := range seed.Inherits {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, SubjectForRole(parent)); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), NormalizeObject(obj), NormalizeAction(act))
}

// EnforceRole 按管理员角色判定授权
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	if strings.TrimSpace(role) == "" {
		return false, nil
	}
	return s.Enforce(SubjectForRole(role), obj, act)
}

// SubjectForRole 角色主体
func SubjectForRole(role string) string {
	return rolePrefix + strings.ToLower(strings.TrimSpace(role))
}

// NormalizeObject 规整资源路径
func NormalizeObject(obj string) string {
	trimmed := strings.TrimSpace(obj)
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed
}

// NormalizeAction 规整 HTTP 方法
func NormalizeAction(act string) string {
	trimmed := strings.TrimSpace(act)
	if trimmed == "*" {
		return trimmed
	}
	return strings.ToUpper(trimmed)
}
