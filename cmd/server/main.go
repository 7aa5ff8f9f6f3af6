package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	"blog_backend/internal/config"
	authadapters "blog_backend/internal/feature/auth/adapters"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	gamesadapters "blog_backend/internal/feature/games/adapters"
	gameshandler "blog_backend/internal/feature/games/transport/handler"
	gamesusecase "blog_backend/internal/feature/games/usecase"
	postshandler "blog_backend/internal/feature/posts/transport/handler"
	postsusecase "blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/feature/tagsuggest/adapters/gemini"
	"blog_backend/internal/feature/tagsuggest/adapters/vision"
	suggesthandler "blog_backend/internal/feature/tagsuggest/transport/handler"
	suggestusecase "blog_backend/internal/feature/tagsuggest/usecase"
	infradb "blog_backend/internal/platform/db"
	jwtmw "blog_backend/internal/platform/jwt"
	infraredis "blog_backend/internal/platform/redis"
	"blog_backend/internal/platform/upload"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := infradb.OpenDB(cfg.DSN(), true)

	// Redis
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr == "" {
		slog.Warn("Redis not configured. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(addr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// アップロード保存先
	images, err := upload.NewStorage(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	postRepo := di.NewPostRepository(rdb, db, cfg.CacheTTL)
	gameRepo := gamesadapters.NewGameRepository(db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, jwtmw.TokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	postsUC := postsusecase.NewPostsUsecase(postRepo)
	gamesUC := gamesusecase.NewGamesUsecase(gameRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	postsH := postshandler.NewPostHandler(postsUC, images)
	gamesH := gameshandler.NewGameHandler(gamesUC)

	// タグ提案・サマリー生成（ADC未設定の環境では無効のまま起動する）
	var suggestH *suggesthandler.TagSuggestHandler
	ctx := context.Background()
	if labeler, err := vision.NewVisionLabeler(ctx); err != nil {
		slog.Warn("Vision client unavailable. Tag suggestions disabled.", "error", err)
	} else if summarizer, err := gemini.NewGeminiSummarizer(ctx); err != nil {
		slog.Warn("Gemini client unavailable. Tag suggestions disabled.", "error", err)
		if cerr := labeler.Close(); cerr != nil {
			slog.Warn("failed to close vision client", "error", cerr)
		}
	} else {
		defer func() {
			if err := labeler.Close(); err != nil {
				slog.Warn("failed to close vision client", "error", err)
			}
		}()
		suggestUC := suggestusecase.NewTagSuggestUsecase(labeler, summarizer)
		suggestH = suggesthandler.NewTagSuggestHandler(suggestUC)
	}

	// ルータ生成
	router := router.NewRouter(authH, postsH, gamesH, suggestH, cfg.JWTSecret, cfg.UploadDir)
	router.Use(cors.Default())

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
