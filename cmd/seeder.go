package cmd

import (
	"fmt"
	"log"

	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed role permissions and one sample account per role for development and testing.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"role_permissions", "user_permission_overrides", "audit_logs"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared role permissions, overrides, and audit logs")
		}

		seedRoles(db)
		seedUsers(db, cfg.Security.BCryptCost)
	},
}

func seedRoles(db *gorm.DB) {
	for role, perms := range accesscontrol.DefaultRolePermissions() {
		if err := db.Exec(
			"INSERT INTO roles (name, created_at, updated_at) VALUES (?, now(), now()) ON CONFLICT (name) DO NOTHING",
			string(role),
		).Error; err != nil {
			log.Fatalf("failed to insert role %s: %v", role, err)
		}

		for _, perm := range perms {
			if err := db.Exec(
				"INSERT INTO role_permissions (role, permission, created_at) VALUES (?, ?, now()) ON CONFLICT (role, permission) DO NOTHING",
				string(role), string(perm),
			).Error; err != nil {
				log.Fatalf("failed to insert permission %s for role %s: %v", perm, role, err)
			}
		}
		fmt.Printf("Seeded role %s with %d permissions\n", role, len(perms))
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	password := "password"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	samples := []struct {
		email         string
		name          string
		role          accesscontrol.Role
		securityLevel accesscontrol.SecurityLevel
	}{
		{"asha.sp@reformtrack.gov.in", "Asha Kulkarni", accesscontrol.RoleSP, accesscontrol.SecurityHigh},
		{"rohan.lead@reformtrack.gov.in", "Rohan Deshmukh", accesscontrol.RoleTeamLeader, accesscontrol.SecurityHigh},
		{"priya.member@reformtrack.gov.in", "Priya Patil", accesscontrol.RoleMember, accesscontrol.SecurityStandard},
		{"vikram.viewer@reformtrack.gov.in", "Vikram Jadhav", accesscontrol.RoleViewer, accesscontrol.SecurityLimited},
	}

	for _, s := range samples {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", s.email).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists, skipping\n", s.email)
			continue
		}

		if err := db.Exec(
			"INSERT INTO users (email, name, password_hash, role, security_level, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
			s.email, s.name, string(hash), string(s.role), string(s.securityLevel),
		).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", s.email, err)
		}
		fmt.Printf("Seeded %s user: %s\n", s.role, s.email)
	}
}
