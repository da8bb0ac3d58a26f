package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/assistant"
	"github.com/pocketledger/backend/internal/config"
	"github.com/pocketledger/backend/internal/controllers"
	"github.com/pocketledger/backend/internal/fixture"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/pocketledger/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	settings, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the data directory
	err = os.MkdirAll(filepath.Dir(settings.DBPath), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(settings.DBPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Demo mode works without any bank connection, seed it right away
	if models.Source(settings.DataSource) == models.SourceDemo {
		if err := fixture.Seed(models.DB); err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	client := provider.NewHTTPClient(settings.Aggregator)

	// Without model credentials the rest of the backend still works, the
	// chat endpoints answer with a conversational unavailability reply
	var session assistant.Session
	session, err = assistant.NewGeminiSession(context.Background(), settings.Assistant)
	if err != nil {
		log.Warn().Err(err).Msg("assistant disabled")
		session = assistant.UnconfiguredSession{}
	}

	co := controllers.New(settings, client, session)

	r, err := router.Config(settings)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(co, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
