// Seed loads demo users and rooms, or wipes the database.
//
//	go run ./cmd/seed -i   import demo data
//	go run ./cmd/seed -d   delete everything
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/auth"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/model"
	"github.com/AlexDaniel593/Reservas-biblioteca-backend/internal/store"
)

var seedUsers = []struct {
	name, email, password, role string
}{
	{"Administrador", "admin@biblioteca.com", "admin12345", model.RoleAdmin},
	{"Juan Pérez", "juan@test.com", "password123", model.RoleUser},
	{"María García", "maria@test.com", "password123", model.RoleUser},
}

var seedRooms = []model.Room{
	{
		Name: "Sala de Estudio 1", Capacity: 6, Location: "Planta 1",
		Description: "Sala pequeña para grupos de estudio",
		Equipment:   []string{"pizarra", "proyector"}, Available: true,
	},
	{
		Name: "Sala de Estudio 2", Capacity: 4, Location: "Planta 1",
		Description: "Sala silenciosa",
		Equipment:   []string{"pizarra"}, Available: true,
	},
	{
		Name: "Sala de Conferencias", Capacity: 20, Location: "Planta 2",
		Description: "Sala grande con equipo audiovisual",
		Equipment:   []string{"proyector", "videoconferencia", "pizarra"}, Available: true,
	},
	{
		Name: "Sala Multimedia", Capacity: 10, Location: "Planta 2",
		Description: "En mantenimiento",
		Equipment:   []string{"ordenadores", "proyector"}, Available: false,
	},
}

func main() {
	importFlag := flag.Bool("i", false, "import demo data")
	deleteFlag := flag.Bool("d", false, "delete all data")
	flag.Parse()

	if !*importFlag && !*deleteFlag {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err == nil {
		if _, err := pool.Exec(ctx, string(migration)); err != nil {
			log.Printf("migration warning: %v", err)
		}
	}

	log.Println("clearing existing data")
	for _, table := range []string{"reservations", "rooms", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}

	if *deleteFlag {
		log.Println("data deleted")
		return
	}

	st := store.New(pool)

	log.Println("importing users")
	for _, u := range seedUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		err = st.CreateUser(ctx, &model.User{
			ID:           uuid.New().String(),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
		})
		if err != nil {
			log.Fatalf("create user %s: %v", u.email, err)
		}
	}

	log.Println("importing rooms")
	for _, r := range seedRooms {
		r.ID = uuid.New().String()
		if err := st.CreateRoom(ctx, &r); err != nil {
			log.Fatalf("create room %s: %v", r.Name, err)
		}
	}

	log.Println("seed data imported")
}
