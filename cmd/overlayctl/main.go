// Command overlayctl inspects and edits the durable overlay directly:
// list keys by prefix, dump a record, delete a record. Useful when a
// draft or salary structure needs to be cleared out of band.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/medboard/hospital-api/internal/overlay"
)

type Config struct {
	Backend string `envconfig:"OVERLAY_BACKEND" default:"file"`

	FilePath string `envconfig:"OVERLAY_FILE_PATH" default:"data/overlay.json"`

	RedisURL       string `envconfig:"OVERLAY_REDIS_URL" default:"redis://localhost:6379/0"`
	RedisNamespace string `envconfig:"OVERLAY_REDIS_NAMESPACE" default:"overlay"`

	PostgresHost     string `envconfig:"OVERLAY_POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"OVERLAY_POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"OVERLAY_POSTGRES_USER" default:"medboard"`
	PostgresPassword string `envconfig:"OVERLAY_POSTGRES_PASSWORD" default:"medboard"`
	PostgresName     string `envconfig:"OVERLAY_POSTGRES_NAME" default:"medboard"`
	PostgresSSLMode  string `envconfig:"OVERLAY_POSTGRES_SSLMODE" default:"disable"`
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: overlayctl <command> [args]

commands:
  keys [prefix]    list keys, optionally filtered by prefix
  get <key>        print the raw JSON value of a key
  delete <key>     delete a key

backend selection via OVERLAY_BACKEND (file | redis | postgres) and the
matching OVERLAY_* environment variables.
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fatal(err)
	}

	ov, err := newOverlay(cfg)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	switch args[0] {
	case "keys":
		prefix := ""
		if len(args) > 1 {
			prefix = args[1]
		}
		keys, err := ov.Keys(ctx, prefix)
		if err != nil {
			fatal(err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}

	case "get":
		if len(args) != 2 {
			usage()
		}
		raw, err := ov.Get(ctx, args[1])
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(raw))

	case "delete":
		if len(args) != 2 {
			usage()
		}
		if err := ov.Delete(ctx, args[1]); err != nil {
			fatal(err)
		}
		fmt.Println("deleted", args[1])

	default:
		usage()
	}
}

func newOverlay(cfg Config) (overlay.Store, error) {
	switch cfg.Backend {
	case "redis":
		return overlay.NewRedisStore(overlay.RedisConfig{
			URL:       cfg.RedisURL,
			Namespace: cfg.RedisNamespace,
		})
	case "postgres":
		return overlay.NewPostgresStore(overlay.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			Name:     cfg.PostgresName,
			SSLMode:  cfg.PostgresSSLMode,
		})
	case "file":
		return overlay.NewFileStore(cfg.FilePath)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "overlayctl:", err)
	os.Exit(1)
}
