package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	companybolt "github.com/seatflow/go-floorplan-server/companies/boltrepo"
	"github.com/seatflow/go-floorplan-server/floorplan"
	floorplanbolt "github.com/seatflow/go-floorplan-server/floorplan/boltrepo"
	"github.com/seatflow/go-floorplan-server/internal/config"
	"github.com/seatflow/go-floorplan-server/platform"
	"github.com/seatflow/go-floorplan-server/server"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	setupLogging(cfg.GetEnv())
	displayAppname(cfg.GetAppName())

	db, err := openDatabase(cfg.GetDataFile())
	if err != nil {
		return err
	}
	defer db.Close()

	companyRepo, err := companybolt.NewCompanyRepo(db)
	if err != nil {
		return fmt.Errorf("companies boltrepo: %w", err)
	}
	floorplanRepo, err := floorplanbolt.NewFloorplanRepo(db)
	if err != nil {
		return fmt.Errorf("floorplan boltrepo: %w", err)
	}

	platformClient := platform.NewClient(cfg.GetPlatformURL(), platform.Credentials{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURI:  cfg.GetRedirectURI(),
	}, cfg.GetExchangeTimeout())

	srv, err := server.New(cfg, server.Repos{Companies: companyRepo}, floorplan.NewService(floorplanRepo), platformClient)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func setupLogging(env string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if env == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func openDatabase(dataFile string) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dataFile), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := bolt.Open(dataFile, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt.Open %s: %w", dataFile, err)
	}
	return db, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
