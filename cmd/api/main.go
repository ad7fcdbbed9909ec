package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoedex/db"
	"shoedex/internal/handler"
	"shoedex/internal/repository"
)

func main() {

	godotenv.Load()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	shoeRepo := repository.NewShoeRepository(db.DB)
	shoeHandler := handler.NewShoeHandler(shoeRepo)

	articleRepo := repository.NewArticleRepository(db.DB)
	syncRepo := repository.NewSyncRepository(db.DB)
	statsHandler := handler.NewStatsHandler(articleRepo, syncRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/shoes", shoeHandler.GetFeed)
	r.GET("/shoes/:id", shoeHandler.GetShoe)
	r.GET("/brands", shoeHandler.GetBrands)
	r.GET("/stats", statsHandler.GetStats)
	r.GET("/health", shoeHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
