package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ng-portfolio/backend/internal/content/handler"
	"github.com/ng-portfolio/backend/internal/content/service"
	"github.com/ng-portfolio/backend/internal/database"
)

// Standalone content-only service: serves just the portfolio document API,
// useful when uploads are handled elsewhere (e.g. a CDN) or for local editing.
func main() {
	port := os.Getenv("CONTENT_SERVICE_PORT")
	if port == "" {
		port = "3010"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// Prefer Mongo-backed service when MONGODB_URI is provided.
	var svc service.Service
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v), using memory-backed store", err)
			svc = service.NewMemoryService()
		} else {
			col := client.Database(os.Getenv("MONGODB_DATABASE")).Collection("portfolio")
			svc = service.NewMongoService(col, "portfolio")
		}
	} else if path := os.Getenv("DATA_FILE"); path != "" {
		svc = service.NewFileService(path)
	} else {
		svc = service.NewMemoryService()
	}

	handler.New(svc, os.Getenv("SERVER_ENVIRONMENT") == "development").Register(r)

	log.Printf("portfolio content service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
