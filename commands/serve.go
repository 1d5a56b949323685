// commands/serve.go
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"next2play/config"
	"next2play/handlers"
	"next2play/services"
	"next2play/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the view service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	store, err := artworkStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize artwork storage: %w", err)
	}
	mirror := services.NewArtworkMirror(nil, store, db)
	if err := mirror.LoadRecords(ctx); err != nil {
		log.Printf("⚠️  %v", err)
	}

	var snapshots services.SnapshotStore = services.NopSnapshotStore{}
	if db != nil {
		snapshots = services.NewGormSnapshotStore(db)
	}

	backend := services.NewBacklogClient(cfg.BackendURL, cfg.BackendToken)
	coll := services.NewCollection(services.ParseLocale(cfg.CollationLocale))
	resync, err := services.NewResyncer(backend, coll, snapshots)
	if err != nil {
		return err
	}
	defer resync.Shutdown()

	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if _, err := resync.Boot(bootCtx); err != nil {
		log.Printf("⚠️  Starting with an empty collection: %v", err)
	}
	cancel()

	sessions := services.NewSessionStore(cfg.BatchSize, cfg.NoticeDuration)
	cards := services.CardBuilder{
		Images: services.ImageOptions{
			RootMargin: cfg.ImageRootMargin,
			Threshold:  cfg.ImageThreshold,
			Width:      150,
			Height:     225,
		},
		Artwork: mirror,
	}
	view := services.NewViewService(coll, sessions, backend, resync, cards, services.ViewOptions{
		ResyncDelay:       cfg.ResyncDelay,
		HighlightDuration: cfg.HighlightDuration,
		RevealPause:       cfg.RevealPause,
	})

	sched, err := services.StartMaintenanceScheduler(sessions, coll, mirror, services.MaintenanceOptions{
		SessionIdleTimeout: cfg.SessionIdleTimeout,
		ArtworkInterval:    cfg.ArtworkInterval,
	})
	if err != nil {
		return err
	}
	defer sched.Shutdown()

	workers.NewCollectionSyncWorker(resync, cfg.CollectionSyncInterval).Start(ctx)
	go workers.PollRecentGames(ctx, view.Recent, cfg.RecentPollInterval)

	app := newApp(cfg, view)
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Backend: %s (%d games loaded)", cfg.BackendURL, len(coll.Snapshot().Games))
	log.Printf("✅ CORS configured for origins: %s", cfg.Origins())

	<-ctx.Done()
	log.Println("Shutting down server...")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func newApp(cfg config.Config, view *services.ViewService) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Last-Event-ID, X-Edit-Token",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	handlers.SetupViewRoutes(app, view, handlers.ViewAuth{
		EditToken:   cfg.EditToken,
		ViewOnly:    cfg.ViewOnly,
		SessionIdle: cfg.SessionIdleTimeout,
	})

	app.Static("/game_images", cfg.ArtworkDir)
	return app
}
