// Package app wires the client components into the annotateview terminal
// client: configuration, logging, the API client, the session store and the
// page views, plus the command dispatch of the binary.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/logger"
	"github.com/chirag807/pdf-annotation-frontend/pkg/session"
)

// App holds the wired application state of one client run.
type App struct {
	config *Config
	log    zerolog.Logger
	api    *client.Client
	sess   *session.Store
	out    io.Writer
}

// New wires an application from config. Output goes to out (stdout for the
// binary, a buffer in tests).
func New(config *Config, out io.Writer) (*App, error) {
	log := logger.New().WithLevel(config.LogLevel).Console().Make()

	api := client.New(config.APIURL)

	tokens, err := session.NewFileTokenStore(config.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up token store: %w", err)
	}

	return &App{
		config: config,
		log:    log,
		api:    api,
		sess:   session.NewStore(api, tokens, log),
		out:    out,
	}, nil
}

// Session exposes the session store, mainly for tests.
func (a *App) Session() *session.Store {
	return a.sess
}

// Main is the entry point of the annotateview binary: load config, wire the
// app, run the command. It can be called directly from tests without
// building the binary.
func Main(ctx context.Context, args []string) error {
	app, err := New(LoadConfig(), os.Stdout)
	if err != nil {
		return err
	}
	return app.Run(ctx, args)
}
