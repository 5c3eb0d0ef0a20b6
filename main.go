package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/config"
	"github.com/campus-pulse/insight-engine/pkg/database"
	"github.com/campus-pulse/insight-engine/pkg/handlers"
	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/logging"
	"github.com/campus-pulse/insight-engine/pkg/middleware"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
	"github.com/campus-pulse/insight-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure on exit is harmless

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", cfg.AI.Model),
		zap.String("database", cfg.Database.Database))

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Database.ConnectionString(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations using database/sql (required by golang-migrate)
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	sqlDB.Close()

	// Repositories
	unitRepo := repositories.NewUnitRepository(db)
	taxonomyRepo := repositories.NewTaxonomyRepository(db)
	segmentRepo := repositories.NewSegmentRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	metricsRepo := repositories.NewMetricsRepository(db)

	if err := seedTaxonomies(ctx, cfg, unitRepo, taxonomyRepo, logger); err != nil {
		logger.Fatal("Failed to seed taxonomies", zap.Error(err))
	}

	// Model invoker. A missing API key is not fatal here: dashboard routes
	// stay available and model routes report the misconfiguration.
	invoker, err := llm.NewInvoker(cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create model invoker", zap.Error(err))
	}

	// Services
	analysisService := services.NewAnalysisService(invoker, cfg.InstitutionName, logger)
	discoveryService := services.NewDiscoveryService(invoker, cfg.InstitutionName, logger)
	taxonomyService := services.NewTaxonomyService(invoker, cfg.InstitutionName, logger)
	mappingService := services.NewMappingService(invoker, cfg.InstitutionName, logger)
	reportService := services.NewReportService(invoker, reportRepo, segmentRepo, cfg.InstitutionName, logger)
	chatService := services.NewChatService(invoker, unitRepo, reportRepo, metricsRepo,
		cfg.InstitutionName, cfg.AI.FastModel, logger)
	dashboardService := services.NewDashboardService(unitRepo, taxonomyRepo, metricsRepo, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg.Version, logger).RegisterRoutes(mux)
	handlers.NewAnalysisHandler(analysisService, segmentRepo, logger).RegisterRoutes(mux)
	handlers.NewTaxonomyHandler(discoveryService, taxonomyService, logger).RegisterRoutes(mux)
	handlers.NewMappingHandler(mappingService, logger).RegisterRoutes(mux)
	handlers.NewReportHandler(reportService, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(chatService, logger).RegisterRoutes(mux)
	handlers.NewDashboardHandler(unitRepo, dashboardService, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting insight-engine", zap.String("addr", addr), zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// seedTaxonomies applies the shipped core category list to every unit that
// has none yet. SeedUnit is idempotent, so restarts are safe.
func seedTaxonomies(
	ctx context.Context,
	cfg *config.Config,
	unitRepo repositories.UnitRepository,
	taxonomyRepo repositories.TaxonomyRepository,
	logger *zap.Logger,
) error {
	seed, err := cfg.LoadSeedTaxonomy()
	if err != nil {
		return err
	}
	if len(seed) == 0 {
		logger.Info("No seed taxonomy configured, skipping")
		return nil
	}

	categories := make([]models.Category, 0, len(seed))
	subNames := make(map[string][]string, len(seed))
	for _, s := range seed {
		categories = append(categories, models.Category{Name: s.Name, Description: s.Description})
		if len(s.Subcategories) > 0 {
			subNames[s.Name] = s.Subcategories
		}
	}

	units, err := unitRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, u := range units {
		if err := taxonomyRepo.SeedUnit(ctx, u.ID, categories, subNames); err != nil {
			return err
		}
	}

	logger.Info("Seeded default taxonomies",
		zap.Int("units", len(units)),
		zap.Int("categories", len(categories)))
	return nil
}
