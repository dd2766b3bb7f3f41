// Seeds the database with a demo user and sample tasks.
package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jalali-planner/internal/config"
	"jalali-planner/internal/model"
	"jalali-planner/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// the seeder only needs the database; a missing JWT_SECRET is fine
		log.Printf("config: %v (continuing)", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	user, err := userRepo.FindByEmail(ctx, "demo@example.com")
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &model.User{Name: "Demo User", Email: "demo@example.com", PasswordHash: string(hash)}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create user: %v", err)
		}
	case err != nil:
		log.Fatalf("find user: %v", err)
	}

	seeds := []model.Task{
		{Text: "Buy dark chocolate", Date: "2022-02-01"},
		{Text: "Make chocolate dessert", Date: "2022-02-01", Completed: true},
		{Text: "Buy Valentine's gift", Date: "2022-02-14"},
		{Text: "Make dinner reservation", Date: "2022-02-14", Completed: true},
		{Text: "Order flowers", Date: "2022-02-14"},
		{Text: "Buy chocolate mint ice cream", Date: "2022-02-19"},
		{Text: "Try mint chocolate recipe", Date: "2022-02-19"},
		{Text: "Visit President's Day sale", Date: "2022-02-21"},
	}

	for i := range seeds {
		seeds[i].UserID = user.ID
		if err := taskRepo.Create(ctx, &seeds[i]); err != nil {
			log.Fatalf("seed task %q: %v", seeds[i].Text, err)
		}
	}

	log.Printf("seeded %d tasks for %s", len(seeds), user.Email)
}
