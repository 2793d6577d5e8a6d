package accesscontrol

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// RoleStore is the persistence contract for role definitions.
type RoleStore interface {
	LoadRolePermissions(ctx context.Context) (map[Role][]Permission, error)
	ReplaceRolePermissions(ctx context.Context, role Role, permissions []Permission) error
}

// RoleTable is the authoritative role-to-permission mapping consulted on
// every permission check. It caches an in-memory snapshot of the role store;
// administrative updates write through the store and then Reload, so the
// enforcement path and the admin path always agree on one source of truth.
type RoleTable struct {
	store  RoleStore
	logger *slog.Logger

	mu     sync.RWMutex
	grants map[Role]map[Permission]struct{}
}

func NewRoleTable(store RoleStore, logger *slog.Logger) (*RoleTable, error) {
	t := &RoleTable{
		store:  store,
		logger: logger,
	}
	if err := t.Reload(context.Background()); err != nil {
		return nil, err
	}
	return t, nil
}

// NewStaticRoleTable builds a table from a fixed mapping with no backing
// store. Used by tests and by callers that inject configuration directly.
func NewStaticRoleTable(mapping map[Role][]Permission, logger *slog.Logger) *RoleTable {
	t := &RoleTable{logger: logger}
	t.install(mapping)
	return t
}

// Reload replaces the snapshot with the store's current contents. A store
// with no role rows yet (fresh database) falls back to the built-in defaults.
func (t *RoleTable) Reload(ctx context.Context) error {
	mapping, err := t.store.LoadRolePermissions(ctx)
	if err != nil {
		return err
	}
	if len(mapping) == 0 {
		t.logger.Warn("role store is empty, falling back to built-in role defaults")
		mapping = DefaultRolePermissions()
	}
	t.install(mapping)
	return nil
}

func (t *RoleTable) install(mapping map[Role][]Permission) {
	grants := make(map[Role]map[Permission]struct{}, len(mapping))
	for role, perms := range mapping {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		grants[role] = set
	}

	t.mu.Lock()
	t.grants = grants
	t.mu.Unlock()
}

// HasPermission reports whether the role's grant list contains the key.
func (t *RoleTable) HasPermission(role Role, perm Permission) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set, ok := t.grants[role]
	if !ok {
		return false
	}
	_, granted := set[perm]
	return granted
}

// Grants returns the role's permission list, sorted for stable output.
func (t *RoleTable) Grants(role Role) []Permission {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set, ok := t.grants[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// Roles returns the known role names, sorted.
func (t *RoleTable) Roles() []Role {
	t.mu.RLock()
	defer t.mu.RUnlock()

	roles := make([]Role, 0, len(t.grants))
	for r := range t.grants {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Replace persists a new grant list for the role and refreshes the snapshot
// so the change is visible to enforcement immediately.
func (t *RoleTable) Replace(ctx context.Context, role Role, permissions []Permission) error {
	if t.store == nil {
		t.mu.Lock()
		set := make(map[Permission]struct{}, len(permissions))
		for _, p := range permissions {
			set[p] = struct{}{}
		}
		t.grants[role] = set
		t.mu.Unlock()
		return nil
	}

	if err := t.store.ReplaceRolePermissions(ctx, role, permissions); err != nil {
		return err
	}
	return t.Reload(ctx)
}
