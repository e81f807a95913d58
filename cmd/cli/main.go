package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/habitatgo/internal/app"
	"github.com/vk/habitatgo/internal/cli"
	"github.com/vk/habitatgo/internal/config"
	"github.com/vk/habitatgo/internal/hcl"
	"github.com/vk/habitatgo/internal/yamlcfg"
)

// main is the entrypoint for the habitatgo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	// The app panics on critical startup errors, so we recover here to
	// surface them as ordinary errors.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	var loader config.Loader
	if appConfig.Format == "yaml" {
		loader = yamlcfg.NewLoader()
	} else {
		loader = hcl.NewLoader()
	}
	habitatApp := app.NewApp(outW, appConfig, loader)

	return habitatApp.Run(context.Background(), appConfig)
}
