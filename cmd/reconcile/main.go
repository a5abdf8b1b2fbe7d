// Command reconcile recomputes like_count and comment_count for every post
// from the likes and comments tables.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/internal/router"
	"github.com/anonto42/socialconnect/backend/pkg/config"
	"github.com/anonto42/socialconnect/backend/validators"
	"github.com/labstack/gommon/log"
)

func main() {
	postID := flag.String("post", "", "reconcile a single post instead of all posts")
	flag.Parse()

	cfg := config.Load()
	logger := log.New("reconcile")
	logger.SetLevel(cfg.Level())

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{Postgres: db.Postgres, Logger: logger}
	if cfg.PostStore == config.PostStoreMongo {
		deps.Posts = repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	}
	if err := models.Migrate(db.Postgres, deps.Posts == nil); err != nil {
		logger.Fatalf("Failed to migrate: %v", err)
	}
	counters := router.NewServices(deps, validators.NewValidator()).Counter

	if *postID != "" {
		result, err := counters.ReconcilePost(ctx, *postID)
		if err != nil {
			logger.Fatalf("Failed to reconcile post %s: %v", *postID, err)
		}
		logger.Infof("Post %s: like_count=%d comment_count=%d", result.PostID, result.LikeCount, result.CommentCount)
		return
	}

	n, err := counters.ReconcileAll(ctx)
	if err != nil {
		logger.Fatalf("Reconciled %d posts before failing: %v", n, err)
	}
}
