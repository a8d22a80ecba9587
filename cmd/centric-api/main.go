package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/client"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/config"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/creds"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/db"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/http"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/repository"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/service"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/workers"
)

func main() {
	log.Println("Starting centric-api...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	pool, err := db.NewPool(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Repositories
	nodeRepo := repository.NewNodeRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	sellRepo := repository.NewSellRepository(pool)
	loginRepo := repository.NewLoginRepository(pool)

	// Shared helpers
	gen := creds.NewGenerator(
		cfg.Creds.UserPrefix,
		cfg.Creds.GroupPrefix,
		cfg.Creds.PassPrefix,
		cfg.Creds.PassIV,
		cfg.Creds.CryptSalt,
	)
	issuer := token.NewIssuer(cfg.JWT.SecretKey)
	nodeClient := client.NewNodeClient(gen)
	workerPool := workers.New(int64(cfg.Workers))

	// Services
	nodeService := service.NewNodeService(nodeRepo, nodeClient, workerPool)
	catalogService := service.NewCatalogService(serviceRepo, userRepo)
	sellService := service.NewSellService(sellRepo, userRepo, serviceRepo, nodeRepo, nodeClient, workerPool)
	authService := service.NewAuthService(loginRepo, issuer, gen, cfg.AdminKey)

	handler := http.NewHandler(nodeService, catalogService, sellService, authService)
	server := http.NewServer(cfg, issuer, handler)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Server starting on %s", addr)
		if err := server.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server exited")
}
