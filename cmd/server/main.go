package main

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/invapp/inventory-api/internal/platform/config"
	"github.com/invapp/inventory-api/internal/platform/database"
	"github.com/invapp/inventory-api/internal/platform/logger"
	productAPI "github.com/invapp/inventory-api/internal/product/api"
	productRepo "github.com/invapp/inventory-api/internal/product/repository"
	productService "github.com/invapp/inventory-api/internal/product/service"
	"github.com/invapp/inventory-api/internal/upload"
)

func main() {
	serverCfg, dbCfg, storageCfg := config.Load()

	logger.Info("Starting Inventory Service...")

	client, err := database.Connect(dbCfg.URI)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer database.Disconnect(client)

	imageStore, err := upload.NewLocalImageStore(storageCfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", err)
	}

	repo := productRepo.NewMongoProductRepository(client.Database(dbCfg.DBName))
	svc := productService.NewProductService(repo, imageStore)
	productHandler := productAPI.NewProductHandler(svc)

	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiGroup := router.Group("/api")
	productHandler.RegisterRoutes(apiGroup)

	// browser client + stored images
	router.StaticFile("/", filepath.Join(storageCfg.PublicDir, "index.html"))
	router.Static("/css", filepath.Join(storageCfg.PublicDir, "css"))
	router.Static("/js", filepath.Join(storageCfg.PublicDir, "js"))
	router.Static(upload.PublicPrefix, storageCfg.UploadDir)

	logger.Info("Inventory Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Inventory Service server", err)
	}
}
