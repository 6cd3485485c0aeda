package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/twpayne/go-srtm"
)

type config struct {
	BaseURL  string `env:"SRTM_BASE_URL"`
	CacheDir string `env:"SRTM_CACHE_DIR" envDefault:"/tmp/hgt"`
	Verbose  bool   `env:"SRTM_VERBOSE"`
}

func run() error {
	_ = godotenv.Load()
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "tile server base URL")
	flag.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "tile cache directory")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log tile fetches")
	flag.Parse()

	if flag.NArg() != 2 {
		return errors.New("syntax: srtm-example latitude longitude")
	}
	lat, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		return err
	}
	lon, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	var skadiSourceOptions []srtm.SkadiSourceOption
	if cfg.BaseURL != "" {
		skadiSourceOptions = append(skadiSourceOptions, srtm.WithBaseURL(cfg.BaseURL))
	}
	source, err := srtm.NewCacheDirSource(srtm.NewSkadiSource(skadiSourceOptions...), cfg.CacheDir)
	if err != nil {
		return err
	}

	es, err := srtm.NewElevationService(source, srtm.WithLogger(logger))
	if err != nil {
		return err
	}

	elevation, err := es.Elevation(context.Background(), lat, lon)
	if err != nil {
		return err
	}
	fmt.Println(elevation)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
