package authz

import "fmt"

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
			Role: "customer",
			Policies: []Policy{
				{Object: "/carts", Action: "GET"},
				{Object: "/carts", Action: "POST"},
				{Object: "/carts", Action: "PATCH"},
				{Object: "/carts/history", Action: "GET"},
				{Object: "/carts/current", Action: "DELETE"},
				{Object: "/carts/products/:model", Action: "DELETE"},
				{Object: "/reviews/:model", Action: "POST"},
				{Object: "/reviews/:model", Action: "DELETE"},
			},
		},
		{
			Role: "manager",
			Policies: []Policy{
				{Object: "/products", Action: "GET"},
				{Object: "/products", Action: "POST"},
				{Object: "/products", Action: "DELETE"},
				{Object: "/products/:model", Action: "PATCH"},
				{Object: "/products/:model", Action: "DELETE"},
				{Object: "/products/:model/sell", Action: "PATCH"},
				{Object: "/carts/all", Action: "GET"},
				{Object: "/carts", Action: "DELETE"},
				{Object: "/reviews/:model/all", Action: "DELETE"},
				{Object: "/reviews", Action: "DELETE"},
				{Object: "/stock-alerts", Action: "GET"},
			},
		},
		{
			Role:     "admin",
			Inherits: []string{"manager"},
			Policies: []Policy{
				{Object: "/users", Action: "GET"},
				{Object: "/users", Action: "DELETE"},
				{Object: "/users/roles/:role", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
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
