package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/careloop/clinic-api/config"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/helpers"
)

// Seeds a staff login and a small doctor roster for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	staffEmail := "frontdesk@careloop.local"
	staffPassword := "password123"
	hash, err := helpers.HashPassword(staffPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var staffID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password_hash, role, phone)
		VALUES ($1, $2, $3, 'STAFF', '91234567')
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, valueobject.NewUserID().String(), staffEmail, hash).Scan(&staffID)
	if err != nil {
		log.Fatalf("failed to seed staff user: %v", err)
	}
	fmt.Printf("seeded staff: id=%s email=%s password=%s\n", staffID, staffEmail, staffPassword)

	doctors := []struct {
		first, last, email, spec string
	}{
		{"Mei Ling", "Tan", "ml.tan@careloop.local", "General Practice"},
		{"Arjun", "Nair", "a.nair@careloop.local", "Cardiology"},
		{"Wei Jie", "Lim", "wj.lim@careloop.local", "Dermatology"},
	}
	for _, d := range doctors {
		var id string
		err := db.QueryRow(`
			INSERT INTO doctors (id, first_name, last_name, email, specialization, active)
			VALUES ($1, $2, $3, $4, $5, true)
			ON CONFLICT (email) DO UPDATE SET updated_at = now()
			RETURNING id
		`, valueobject.NewDoctorID().String(), d.first, d.last, d.email, d.spec).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed doctor %s: %v", d.email, err)
		}
		fmt.Printf("seeded doctor: id=%s email=%s\n", id, d.email)

		// Matching DOCTOR login so the roster can sign in.
		var uid string
		if err := db.QueryRow(`
			INSERT INTO users (id, email, password_hash, role, phone)
			VALUES ($1, $2, $3, 'DOCTOR', '')
			ON CONFLICT (email) DO UPDATE SET updated_at = now()
			RETURNING id
		`, valueobject.NewUserID().String(), d.email, hash).Scan(&uid); err != nil {
			log.Fatalf("failed to seed doctor login %s: %v", d.email, err)
		}
	}
}
