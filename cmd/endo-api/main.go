// Standalone prediction service, for deployments where the model host runs
// separately from the wizard UI.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/jamiesoo123/ENG40011-EndoMML/adapters/endomodel"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal/api"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	logger := internal.NewDefaultLogger()

	model, err := endomodel.Load(cfg.Model.File)
	if err != nil {
		log.Fatalf("model load error: %v", err)
	}
	logger.Info("model loaded with %d features", len(model.Features()))

	router := api.NewRouter(model, "data", logger)
	logger.Info("prediction API listening on :%s", cfg.Server.APIPort)
	log.Fatal(router.Run(":" + cfg.Server.APIPort))
}
