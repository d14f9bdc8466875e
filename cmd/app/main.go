package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/cuongccna/tradingjournalai-sub000/internal/di"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	checkOnly := flag.Bool("check", false, "validate the configuration and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s credentials=%s news_cache=%s default_keys=[%s]",
		cfg.Environment, cfg.Credentials.Store, cfg.News.Cache, configuredKeys(cfg.Credentials.Defaults))
	if *checkOnly {
		fmt.Println("config ok")
		return
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// blocks until SIGINT/SIGTERM
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

// configuredKeys lists provider names that have a default key. Values are never printed.
func configuredKeys(defaults map[string]string) string {
	names := make([]string, 0, len(defaults))
	for name, v := range defaults {
		if v != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
