package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/cli"
	"github.com/alexanderramin/roastery/internal/config"
	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/httpapi"
	"github.com/alexanderramin/roastery/internal/llm"
	"github.com/alexanderramin/roastery/internal/repository"
	"github.com/alexanderramin/roastery/internal/service"
	"github.com/alexanderramin/roastery/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFiles)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	coffeeRepo := repository.NewSQLiteCoffeeRepo(database)
	termRepo := repository.NewSQLiteProductTaxonomyRepo(database)
	regionRepo := repository.NewSQLiteRegionRepo(database)
	brewRepo := repository.NewSQLiteBrewMethodRepo(database)
	roastRepo := repository.NewSQLiteRoastLevelRepo(database)
	flavorRepo := repository.NewSQLiteFlavorRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(log)

	// Image storage is optional; without it uploads answer 503.
	var store storage.ObjectStore
	if cfg.Storage.Enabled() {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("connecting object storage: %w", err)
		}
		store = s3Store
	} else {
		log.Info("object storage not configured, image uploads disabled")
	}

	var chatClient llm.LLMClient
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(log)
		}
		if chatClient, err = llm.NewClient(llmCfg, llmObserver); err != nil {
			return fmt.Errorf("configuring llm: %w", err)
		}
	}

	images := service.NewImageService(store, log, observer)
	app := &cli.App{
		Import:      service.NewImportService(uow, log, observer),
		Coffees:     service.NewCoffeeService(coffeeRepo, termRepo, images, uow, log, observer),
		Regions:     service.NewRegionService(regionRepo),
		BrewMethods: service.NewBrewMethodService(brewRepo),
		RoastLevels: service.NewRoastLevelService(roastRepo),
		Flavors:     service.NewFlavorService(flavorRepo, coffeeRepo, uow, log, observer),
		Images:      images,
		Chat:        service.NewChatService(chatClient, coffeeRepo, regionRepo, brewRepo, log, observer),
		Content:     service.NewContentService(chatClient, coffeeRepo, flavorRepo, log, observer),
		HTTPAddr:    cfg.HTTPAddr,
		Log:         log,
	}

	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	app.Handler = httpapi.NewRouter(httpapi.Deps{
		Import:         app.Import,
		Coffees:        app.Coffees,
		Regions:        app.Regions,
		BrewMethods:    app.BrewMethods,
		RoastLevels:    app.RoastLevels,
		Flavors:        app.Flavors,
		Images:         app.Images,
		Chat:           app.Chat,
		Content:        app.Content,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MetricsPath:    cfg.MetricsPath,
	})

	// Detect interactive terminal for progress views and prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
