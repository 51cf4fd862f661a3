package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/talentsift/resume-screener/internal/agent"
	"github.com/talentsift/resume-screener/internal/api"
	"github.com/talentsift/resume-screener/internal/config"
	"github.com/talentsift/resume-screener/internal/ingestion"
	"github.com/talentsift/resume-screener/internal/llm"
	"github.com/talentsift/resume-screener/internal/parser"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.ApplyToEnv()

	// The oracle is optional: without it the pipeline runs on local
	// heuristics alone.
	var oracle parser.Oracle
	if cfg.UseOracle {
		client, err := llm.NewVertexAIClient()
		if err != nil {
			log.Printf("Oracle unavailable, continuing with heuristics only: %v", err)
		} else {
			defer client.Close()
			oracle = client
		}
	}

	p := parser.New(oracle, time.Duration(cfg.OracleTimeoutSeconds)*time.Second)
	screeningAgent := agent.New(p, cfg.UploadsDir, cfg.MaxConcurrent)

	// Gmail intake is configured only when credentials exist.
	var gmail *ingestion.GmailHandler
	if cfg.GmailCredentialsPath != "" {
		gmail, err = ingestion.NewGmailHandler(context.Background(), cfg.UploadsDir, cfg.GmailCredentialsPath, cfg.GmailTokenPath)
		if err != nil {
			log.Printf("Gmail intake unavailable: %v", err)
			gmail = nil
		}
	}

	server := api.NewServer(screeningAgent, gmail, cfg.ReportsDir)

	fmt.Printf("Starting Resume Screener on port %s...\n", cfg.Port)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /screen - Upload resumes or fetch from Gmail, then screen\n")
	fmt.Printf("  GET /report - Get ranked screening results\n")
	fmt.Printf("  GET /export - Download the Excel report\n")

	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
