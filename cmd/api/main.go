package main

import (
	"log"
	"os"

	"github.com/SarthakSwaroop/Finance/internal/auth"
	"github.com/SarthakSwaroop/Finance/internal/config"
	"github.com/SarthakSwaroop/Finance/internal/db"
	"github.com/SarthakSwaroop/Finance/internal/handlers"
	"github.com/SarthakSwaroop/Finance/internal/ledger"
	"github.com/SarthakSwaroop/Finance/internal/quote"
	"github.com/SarthakSwaroop/Finance/internal/trading"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	database, err := db.Open(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer database.Close()

	store := ledger.NewPostgresStore(database)
	oracle := quote.NewClient(cfg.QuoteBaseURL, cfg.QuoteAPIKey)
	engine := ledger.NewEngine(store, oracle)
	validator := ledger.NewValidator(engine, oracle)

	processor := trading.NewProcessor(cfg.Workers, store, validator, oracle)
	processor.Start()
	defer processor.Stop()

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	h := handlers.New(store, engine, processor, oracle, tokens, cfg.StartingCash)
	h.Register(router)

	log.Println("Server starting on http://localhost:" + cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
