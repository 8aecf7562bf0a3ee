package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/redwoodmap/internal/config"
	"github.com/woozymasta/redwoodmap/internal/logger"
	"github.com/woozymasta/redwoodmap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"    description:"Optional YAML file overriding the built-in regions and map settings"`
	Addr       string `short:"a" long:"addr"    env:"LISTEN_ADDRESS" description:"Address to listen on" default:"127.0.0.1"`
	Port       int    `short:"p" long:"port"    env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
	Minify     bool   `short:"m" long:"minify"  env:"MINIFY"         description:"Minify the served HTML"`
	Preview    bool   `short:"P" long:"preview" env:"PREVIEW"        description:"Serve a WebP preview at /preview.webp"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	srvCtx, err := server.NewServerContext(cfg, server.Options{Minify: opts.Minify, Preview: opts.Preview})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render map")
	}

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("regions", len(cfg.Regions)).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
