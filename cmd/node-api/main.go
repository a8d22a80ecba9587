package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/agent"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/config"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/creds"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/sshuser"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/token"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/workers"
)

func main() {
	issueRole := flag.String("issue-token", "", "mint a bearer token for the given role (normal or privileged) and exit")
	flag.Parse()

	cfg, err := config.LoadNodeConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	issuer := token.NewIssuer(cfg.Auth.JWTSecret)

	if *issueRole != "" {
		tokenString, err := issuer.Issue(token.ParseRole(*issueRole))
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(tokenString)
		return
	}

	log.Printf("Starting node-api (%s)...", cfg.NodeInfo.Name)

	gen := creds.NewGenerator(
		cfg.Accounts.UserPrefix,
		cfg.Accounts.GroupPrefix,
		cfg.Accounts.PassPrefix,
		cfg.Accounts.PassIV,
		cfg.Accounts.CryptSalt,
	)
	manager := sshuser.NewManager(gen, cfg.Accounts.DefaultShell, cfg.Usage.TracePath)
	pool := workers.New(int64(cfg.Workers))

	handler := agent.NewHandler(cfg, manager, pool)
	server := agent.NewServer(cfg, issuer, handler)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("Agent listening on %s", addr)
		if err := server.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down agent...")
	log.Println("Agent exited")
}
