// Command healthcheck probes the API's liveness endpoint once and exits 0 on
// a 200 response, 1 otherwise. Intended for container HEALTHCHECK directives.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/healthprobe"
	"github.com/ghuser/itemtracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	url := cfg.HealthcheckURL()

	if err := healthprobe.Probe(context.Background(), url); err != nil {
		log.Error("healthcheck failed", "url", url, "error", err)
		os.Exit(healthprobe.ExitCode(err))
	}
	os.Exit(0)
}
