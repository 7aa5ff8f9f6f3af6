package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "blog_backend/internal/feature/auth/domain/entity"
	gamesadapters "blog_backend/internal/feature/games/adapters"
	postsadapters "blog_backend/internal/feature/posts/adapters"
)

// OpenDB connects to Postgres with the given DSN, retrying until the database
// accepts connections or the deadline passes. TranslateError is enabled so
// unique-key violations surface as gorm.ErrDuplicatedKey regardless of driver.
func OpenDB(dsn string, migrate bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if migrate {
		if err := db.AutoMigrate(
			&authentity.User{},
			&postsadapters.PostModel{},
			&postsadapters.PostTagModel{},
			&gamesadapters.GameModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
