package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shaarli-driver/internal/browser"
	"shaarli-driver/internal/config"
	"shaarli-driver/internal/shaarli"
	"shaarli-driver/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the shaarli-driver config file")
	addURL := flag.String("url", "", "URL to bookmark (skipped when empty)")
	title := flag.String("title", "", "Bookmark title")
	description := flag.String("description", "", "Bookmark description")
	tags := flag.String("tags", "", "Space-separated bookmark tags")
	private := flag.Bool("private", false, "Mark the bookmark private")
	limit := flag.Int("limit", 5, "How many recent links to list")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Keep stdout for results; everything else goes to the log file.
	if cfg.Client.LogFile != "" {
		logFile, err := os.OpenFile(cfg.Client.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(logFile)
			defer logFile.Close()
		} else {
			log.SetOutput(io.Discard)
		}
	}

	if !browser.Probe(cfg.Shaarli.Base(), 10*time.Second) {
		log.Printf("warning: %s did not answer an HTTP probe, continuing anyway", cfg.Shaarli.Base())
	}

	drv, err := browser.Connect(ctx, cfg.Browser)
	if err != nil {
		log.Fatalf("failed to start browser session: %v", err)
	}
	defer drv.Close()

	client, err := shaarli.NewClient(drv, cfg.Shaarli)
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}

	if cfg.Trace.Enable {
		rec, err := trace.NewRecorder(cfg.Trace.Dir)
		if err != nil {
			log.Printf("trace disabled: %v", err)
		} else {
			client.Recorder = rec
			defer rec.Close()
		}
	}

	auth, ok := client.Login(cfg.Shaarli.Username, cfg.Shaarli.Password)
	if !ok {
		log.Fatalf("login to %s failed", cfg.Shaarli.Base())
	}
	fmt.Printf("logged in as %s\n", auth.User())

	if *addURL != "" {
		saved, err := client.AddBookmark(auth, shaarli.Bookmark{
			URL:         *addURL,
			Title:       *title,
			Description: *description,
			Tags:        *tags,
			Private:     *private,
		})
		if err != nil {
			log.Fatalf("add bookmark: %v", err)
		}
		if !saved {
			log.Fatalf("bookmark %s was not saved", *addURL)
		}
		fmt.Printf("saved %s\n", *addURL)
	}

	links, err := client.RecentLinks(auth, *limit)
	if err != nil {
		log.Fatalf("list recent links: %v", err)
	}
	for i, l := range links {
		fmt.Printf("%d. %s\n   %s\n", i+1, l.Title, l.URL)
		if l.Description != "" {
			fmt.Printf("   %s\n", l.Description)
		}
		if l.Tags != "" {
			fmt.Printf("   tags: %s\n", l.Tags)
		}
	}
}
