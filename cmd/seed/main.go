// seed creates a demo user and project for local development and prints a
// ready-to-use bearer token.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users)
	ctx := context.Background()

	const email = "demo@example.com"

	u, err := auth.Register(ctx, email, "", "demo-password")
	if errors.Is(err, domain.ErrConflict) {
		u, err = users.GetByEmail(ctx, email)
		if err != nil {
			log.Fatalf("fetch existing demo user: %v", err)
		}
		log.Printf("user already exists id=%d username=%s", u.ID, u.Username)
	} else if err != nil {
		log.Fatalf("create demo user: %v", err)
	} else {
		log.Printf("user created id=%d username=%s", u.ID, u.Username)
	}

	projects := repository.NewProjectRepository(pool)
	members := repository.NewMembershipRepository(pool)
	svc := service.NewProjectService(projects, members)

	existing, err := svc.ListVisible(ctx, u.ID)
	if err != nil {
		log.Fatalf("list projects: %v", err)
	}
	if len(existing) == 0 {
		p, err := svc.Create(ctx, u.ID, "Demo Project", "Seeded for local development")
		if err != nil {
			log.Fatalf("create demo project: %v", err)
		}
		log.Printf("project created id=%s", p.ID)
	} else {
		log.Printf("found %d existing project(s)", len(existing))
	}

	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	log.Printf("token=%s", token)
}
