// @title           Historian API
// @version         1.0
// @description     Server statistics history: raw samples, per-second rates and windowed averages.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API Key authentication

// @host      localhost:8080
// @BasePath  /api/v1
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	_ "historian/docs" // Swagger docs
	"historian/internal/infrastructure/logger"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "historian",
		Usage: "sample server statistics and keep their history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store", Usage: "storage backend: sqlite or redis (env HISTORIAN_STORE)"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (env HISTORIAN_DB_PATH)"},
			&cli.StringFlag{Name: "redis-addr", Usage: "Redis address (env HISTORIAN_REDIS_ADDR)"},
			&cli.StringFlag{Name: "redis-password", Usage: "Redis password (env HISTORIAN_REDIS_PASSWORD)"},
			&cli.IntFlag{Name: "redis-db", Value: -1, Usage: "Redis database number (env HISTORIAN_REDIS_DB)"},
			&cli.StringFlag{Name: "node-id", Usage: "cluster node identity, empty when standalone (env HISTORIAN_NODE_ID)"},
			&cli.StringFlag{Name: "config", Usage: "YAML statistics config file (env HISTORIAN_CONFIG)"},
			&cli.StringFlag{Name: "api-key", Usage: "API key for /api/v1 (env HISTORIAN_API_KEY)"},
			&cli.StringFlag{Name: "port", Usage: "API port (env HISTORIAN_API_PORT)"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN or ERROR (env HISTORIAN_LOG_LEVEL)"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json (env HISTORIAN_LOG_FORMAT)"},
			&cli.StringFlag{Name: "log-output", Usage: "stdout, stderr or a file path (env HISTORIAN_LOG_OUTPUT)"},
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file to load before reading the environment"},
			&cli.BoolFlag{Name: "dev", Usage: "development mode, the API key becomes optional (env HISTORIAN_DEV_MODE)"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the historians and the API until interrupted",
				Action: serve,
			},
			{
				Name:   "sample",
				Usage:  "take one raw sample of this process and print the outcome",
				Action: sample,
			},
			{
				Name:   "average",
				Usage:  "fold the per-second samples of the last window and print the outcome",
				Action: average,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// Use default logger for final error message if the command failed early
		logger := logger.DefaultLogger()
		logger.Error("Application error", "err", err)
		os.Exit(1)
	}
}
