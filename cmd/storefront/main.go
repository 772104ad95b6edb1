package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fjod/go_storefront/internal/app"
	"github.com/fjod/go_storefront/internal/config"
)

// Composition root for the storefront core. The UI layer embeds the holders
// the app container exposes; there is no command surface here.
func main() {
	cfg := config.Load()

	for _, path := range []string{cfg.CartDBPath, cfg.PrefsDBPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logrus.WithError(err).Fatal("failed to create data directory")
			}
		}
	}

	core, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start storefront core")
	}
	defer core.Close()

	logrus.WithFields(logrus.Fields{
		"api":     cfg.APIBaseURL,
		"cart_db": cfg.CartDBPath,
	}).Info("storefront core ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")
}
