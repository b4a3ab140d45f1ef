package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcribe-translate/internal/api/server"
	"transcribe-translate/internal/app"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/logger"
)

var configFile string

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "f", "",
		"Optional YAML config file overlaying environment settings")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the transcription pipeline HTTP API",
	Long: `Start the transcription pipeline HTTP API

- POST /api/v1/transcriptions runs one invocation to completion
- GET /api/v1/countries lists the supported countries
- /health and /metrics for operations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if configFile != "" {
			var err error
			cfg, err = config.LoadFile(cfg, configFile)
			if err != nil {
				return err
			}
		}
		if cfg.Speech.MaxPolls == 0 {
			cfg.Speech.MaxPolls = 720
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.MustNewLogger(cfg.Server.Environment != "production")
		defer log.Sync()

		orchestrator, err := app.InitializePipeline(cfg, log)
		if err != nil {
			return err
		}

		srv := server.NewServer(cfg.Server, orchestrator, log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			log.Info("received signal", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
