package main

import (
	"os"

	"github.com/klokku/creatordash/internal/app"
	log "github.com/sirupsen/logrus"
)

func init() {
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetLevel(log.InfoLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			log.Fatalf("invalid LOG_LEVEL %q: %v", level, err)
		}
		log.SetLevel(parsed)
	}
}

func main() {
	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to start creator dashboard: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("creator dashboard stopped: %v", err)
	}
}
