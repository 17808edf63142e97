package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"employees", "users", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedDepartments(db)
		seedUsers(db, cfg.Security.BCryptCost)
		seedEmployees(db)

		fmt.Println("Seeding complete")
	},
}

func seedDepartments(db *gorm.DB) {
	departments := []struct {
		Name    string
		Columns string
	}{
		{"Headquarters", "first_name,last_name,contact_info,location,company,department,position,status_active,status_not_started,status_terminated"},
		{"Business Development", "first_name,last_name,contact_info,location,company,department,position"},
	}

	for _, d := range departments {
		var exists int
		row := db.Raw("SELECT 1 FROM departments WHERE name = ?", d.Name).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO departments (name, authorized_columns, created_at, updated_at) VALUES (?, ?, now(), now())", d.Name, d.Columns).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", d.Name, err)
		}
		fmt.Println("Seeded department:", d.Name)
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	password := "Password123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []struct {
		Username   string
		Email      string
		Department string
	}{
		{"user01", "user01@example.com", "Headquarters"},
		{"user02", "user02@example.com", "Business Development"},
	}

	for _, u := range users {
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Printf("user %s already exists; skipping\n", u.Username)
			continue
		}

		if err := db.Exec("INSERT INTO users (username, email, password_hash, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())", u.Username, u.Email, string(hash), u.Department).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Username, err)
		}
		fmt.Println("Seeded user:", u.Username)
	}
}

func seedEmployees(db *gorm.DB) {
	employees := []struct {
		FirstName   string
		LastName    string
		ContactInfo string
		Location    string
		Company     string
		Department  string
		Position    string
		Active      bool
		NotStarted  bool
		Terminated  bool
	}{
		{"Kimmy", "Walczynski", "kimmy.walczynski@example.com", "Berlin", "Acme GmbH", "Engineering", "Software Engineer", true, false, false},
		{"Jonas", "Petersen", "jonas.petersen@example.com", "Hamburg", "Acme GmbH", "Sales", "Account Executive", true, false, false},
		{"Maria", "Santos", "maria.santos@example.com", "Lisbon", "Acme GmbH", "Engineering", "Platform Engineer", false, true, false},
		{"Derek", "Olsen", "derek.olsen@example.com", "Oslo", "Acme GmbH", "Finance", "Controller", false, false, true},
	}

	for _, e := range employees {
		var exists int
		row := db.Raw("SELECT 1 FROM employees WHERE first_name = ? AND last_name = ?", e.FirstName, e.LastName).Row()
		if err := row.Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec(
			"INSERT INTO employees (first_name, last_name, contact_info, location, company, department, position, status_active, status_not_started, status_terminated, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
			e.FirstName, e.LastName, e.ContactInfo, e.Location, e.Company, e.Department, e.Position, e.Active, e.NotStarted, e.Terminated,
		).Error; err != nil {
			log.Fatalf("failed to insert employee %s %s: %v", e.FirstName, e.LastName, err)
		}
		fmt.Printf("Seeded employee: %s %s\n", e.FirstName, e.LastName)
	}
}
