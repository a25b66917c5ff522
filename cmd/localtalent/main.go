package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/cli"
	"github.com/localtalent/console/internal/infrastructure/config"
	"github.com/localtalent/console/pkg/logger"
)

func main() {
	root := cli.NewRootCmd(cli.Options{
		Out: os.Stdout,
		Err: os.Stderr,
		Logger: func(cfg *config.Config) zerolog.Logger {
			return logger.Init(logger.Options{
				Level:  cfg.LogLevel,
				Pretty: cfg.LogPretty || !cfg.IsProduction(),
				Output: os.Stderr,
				Caller: !cfg.IsProduction(),
			})
		},
	})
	if err := root.ExecuteContext(context.Background()); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
