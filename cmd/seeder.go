package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"apr_checklists", "work_permits", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		adminEmail := "admin@permits.local"
		var exists int
		adminExists := false
		if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", adminEmail).Scan(&exists); err == nil {
			fmt.Println("admin user already exists")
			adminExists = true
		}

		if !adminExists {
			if _, err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				"Admin", adminEmail, string(hash), "admin",
			); err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		operatorEmail := "operator@permits.local"
		operatorExists := false
		if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", operatorEmail).Scan(&exists); err == nil {
			fmt.Println("operator user already exists")
			operatorExists = true
		}

		if !operatorExists {
			if _, err := db.Exec(
				"INSERT INTO users (name, email, password_hash, role, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				"Operator", operatorEmail, string(hash), "operator",
			); err != nil {
				log.Fatalf("failed to insert operator user: %v", err)
			}
			fmt.Println("Seeded operator user:", operatorEmail)
		}
	},
}
