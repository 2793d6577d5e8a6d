package postgres

import (
	"database/sql"
	"fmt"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/auth"
	userDatamodel "github.com/reformtrack/reform-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, int64, bool, error) {
	var (
		passwordHash string
		userID       int64
		isActive     bool
	)

	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, fmt.Errorf("user not found")
		}
		return "", 0, false, err
	}

	return passwordHash, userID, isActive, nil
}

// GetPrincipal loads the user row plus permission overrides into the
// principal the guards evaluate. Inactive users still resolve: the resolver
// handles the deny and audits it.
func (r *Repository) GetPrincipal(userID int64) (*accesscontrol.Principal, error) {
	var user userDatamodel.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	var overrides []userDatamodel.PermissionOverride
	if err := r.db.Where("user_id = ?", userID).Find(&overrides).Error; err != nil {
		return nil, err
	}

	overrideMap := make(map[accesscontrol.Permission]bool, len(overrides))
	for _, o := range overrides {
		overrideMap[accesscontrol.Permission(o.Permission)] = o.Allowed
	}

	return &accesscontrol.Principal{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          accesscontrol.Role(user.Role),
		SecurityLevel: accesscontrol.SecurityLevel(user.SecurityLevel),
		Overrides:     overrideMap,
		IsActive:      user.IsActive,
	}, nil
}
