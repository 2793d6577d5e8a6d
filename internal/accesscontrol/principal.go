package accesscontrol

import "context"

// Principal is the authenticated actor the guards evaluate. It is assembled
// by the auth middleware from the user store before any guard runs.
type Principal struct {
	ID            int64               `json:"id"`
	Email         string              `json:"email"`
	Name          string              `json:"name"`
	Role          Role                `json:"role"`
	SecurityLevel SecurityLevel       `json:"security_level"`
	Overrides     map[Permission]bool `json:"permissions,omitempty"`
	IsActive      bool                `json:"is_active"`
}

// Override returns the per-user override for the permission, if one exists.
func (p *Principal) Override(perm Permission) (allowed, present bool) {
	if p.Overrides == nil {
		return false, false
	}
	allowed, present = p.Overrides[perm]
	return allowed, present
}

type ctxKey string

const contextPrincipalKey ctxKey = "principal"

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextPrincipalKey).(*Principal)
	return p, ok
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}
