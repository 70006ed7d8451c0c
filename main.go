package main

import (
	"context"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/catalogsrc"
	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/endoapi"
	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/endomodel"
	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/memstore"
	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/redisstore"
	"github.com/jamiesoo123/ENG40011-EndoMML/app"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal/api"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal/config"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
	"github.com/jamiesoo123/ENG40011-EndoMML/ui"
)

// wizardStore combines the two store roles one backend serves
type wizardStore interface {
	ports.SessionStore
	ports.ResultStore
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()
	ctx := context.Background()

	// The catalog is fetched exactly once; a failure here is fatal to
	// wizard start, surfaced before any page can render.
	var source ports.CatalogSource
	if cfg.Catalog.URL != "" {
		source = catalogsrc.NewHTTPSource(cfg.Catalog.URL)
	} else {
		source = catalogsrc.NewFileSource(cfg.Catalog.File)
	}
	cat, err := source.Load(ctx)
	if err != nil {
		log.Fatalf("catalog load error: %v", err)
	}
	logger.Info("catalog loaded: %d pages, %d features", cat.PageCount(), len(cat.TypeMap()))

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("store initialization error: %v", err)
	}

	engine := wizard.NewEngine(cat)
	client := endoapi.NewClient(cfg.Prediction.PredictURL, cfg.Prediction.ExplainURL, cfg.Prediction.Timeout)
	submissions := app.NewSubmissionService(client, store, cat.TypeMap(), logger)

	uiApp, err := ui.NewApp(ui.Config{
		Port:        cfg.Server.Port,
		Engine:      engine,
		Sessions:    store,
		Results:     store,
		Submissions: submissions,
		Explainer:   client,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create UI app: %v", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(uiApp.Start)

	// The bundled prediction service starts alongside the UI when a model
	// document is available; point PREDICT_URL elsewhere to use an
	// external model host instead.
	if model, err := endomodel.Load(cfg.Model.File); err != nil {
		logger.Warn("bundled model unavailable (%v); relying on %s", err, cfg.Prediction.PredictURL)
	} else {
		router := api.NewRouter(model, "data", logger)
		g.Go(func() error {
			logger.Info("prediction API listening on :%s", cfg.Server.APIPort)
			return router.Run(":" + cfg.Server.APIPort)
		})
	}

	log.Fatal(g.Wait())
}

// buildStore selects redis when configured, the in-process store otherwise
func buildStore(ctx context.Context, cfg *config.Config, logger *internal.Logger) (wizardStore, error) {
	if cfg.Store.RedisURI == "" {
		logger.Info("using in-memory session store (TTL %s)", cfg.Store.SessionTTL)
		return memstore.New(cfg.Store.SessionTTL), nil
	}

	addr := strings.TrimPrefix(cfg.Store.RedisURI, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Info("using redis session store at %s (TTL %s)", addr, cfg.Store.SessionTTL)
	return redisstore.New(rdb, cfg.Store.SessionTTL), nil
}
