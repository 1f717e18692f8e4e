package main

import (
	"log"

	"anoa.com/schoolboard/internal/bootstrap"
	"anoa.com/schoolboard/internal/config"
	"anoa.com/schoolboard/internal/server"
	"anoa.com/schoolboard/internal/service"
	"anoa.com/schoolboard/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdmin(db, service.NewBcryptHasher()); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
