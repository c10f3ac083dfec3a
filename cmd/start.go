package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"loot-manager/core/config"
	"loot-manager/core/database"
	"loot-manager/core/loader"
	"loot-manager/core/logger"
	"loot-manager/core/middleware/auth"
	"loot-manager/core/middleware/rayid"

	"loot-manager/feature/catalog"
	"loot-manager/feature/loot"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog and loot API server",
	Long: `Starts the read-only HTTP API. Catalog and loot endpoints scan the pack
on every request; stored catalog views need a reachable database.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The database is optional; without it stored views answer 503.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))
		}

		app, err := newApp(cfg, logg, db)
		if err != nil {
			logg.Fatal("Failed to build server", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("root", cfg.Scan.Root))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// newApp wires middleware and features into a Fiber app. db may be nil.
func newApp(cfg *config.Config, logg *zap.Logger, db *gorm.DB) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	catalogSvc := catalog.NewService(cfg.Scan, logg, db)
	synth, err := newSynthesizer(cfg, logg)
	if err != nil {
		return nil, err
	}
	lootSvc := loot.NewService(catalogSvc, synth, logg)

	mgr := loader.NewManager()
	mgr.Register(catalog.NewFeature(catalogSvc, logg))
	mgr.Register(loot.NewFeature(lootSvc, cfg.Scan.Root != ""))

	// RayID must be first to trace everything
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
