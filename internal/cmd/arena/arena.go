// Package arena parses arena command flags and composes transport entrypoints.
package arena

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/cardspar/internal/platform/cmd"
	server "github.com/louisbranch/cardspar/internal/services/arena/app"
)

// Config holds arena command configuration.
type Config struct {
	HTTPAddr string `env:"CARDSPAR_ARENA_HTTP_ADDR" envDefault:":8080"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "arena HTTP listen address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the arena app and starts realtime transport behavior.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceArena, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			HTTPAddr: cfg.HTTPAddr,
		}); err != nil {
			return fmt.Errorf("serve arena: %w", err)
		}
		return nil
	})
}
