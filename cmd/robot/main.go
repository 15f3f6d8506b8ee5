package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpcAdapter "github.com/schubart/donald/internal/adapters/grpc"
	"github.com/schubart/donald/internal/adapters/memory"
	"github.com/schubart/donald/internal/adapters/mock"
	"github.com/schubart/donald/internal/adapters/periph"
	"github.com/schubart/donald/internal/adapters/sqlite"
	"github.com/schubart/donald/internal/domain"
	"github.com/schubart/donald/internal/game"
	"github.com/schubart/donald/internal/ports"
	"github.com/schubart/donald/internal/robot"
	"github.com/schubart/donald/internal/timeutil"
	"github.com/schubart/donald/pkg/tlsconfig"
)

// Games older than this are pruned at startup
const historyRetention = 30 * 24 * time.Hour

func main() {
	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(config.LogLevel)

	log.Info().Str("sensor_type", config.SensorType).Msg("starting robot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repository
	var repo domain.GameRepository
	switch config.RepoType {
	case "sqlite":
		r, err := sqlite.NewGameRepository(config.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", config.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", config.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewGameRepository()
		log.Info().Msg("initialized in-memory repository")
	}
	if err := repo.DeleteOldGames(ctx, historyRetention); err != nil {
		log.Error().Err(err).Msg("failed to delete old games")
	}

	// Initialize hardware
	var sensors ports.SensorBus
	var servos ports.ServoDriver
	switch config.SensorType {
	case "i2c":
		bus, err := periph.OpenBus(config.I2CBus)
		if err != nil {
			log.Fatal().Err(err).Str("bus", config.I2CBus).Msg("failed to open I2C bus")
		}
		defer bus.Close()

		sensors = periph.NewSensorBus(bus, config.SensorAddr)
		servos, err = periph.NewServoDriver(bus, config.ServoAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize servo board")
		}
		log.Info().
			Str("bus", config.I2CBus).
			Str("sensor_addr", fmt.Sprintf("0x%02x", config.SensorAddr)).
			Str("servo_addr", fmt.Sprintf("0x%02x", config.ServoAddr)).
			Msg("initialized I2C hardware")
	default:
		toy := mock.NewToy(domain.DefaultHardware, time.Now().UnixNano())
		sensors, servos = toy, toy
		log.Info().Msg("initialized simulated toy")
	}

	// Status endpoint
	reporter := grpcAdapter.NewStatusReporter()
	grpcServer, err := startStatusServer(config, reporter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start status server")
	}

	recorder := ports.NewGameRecorder(repo)
	if err := recorder.Start(ctx); err != nil {
		log.Error().Err(err).Msg("failed to record game start")
	}

	r := robot.New(sensors, servos, domain.DefaultHardware, timeutil.RealClock{})
	loop := game.NewLoop(r, game.Observers{recorder, reporter})

	started := time.Now()
	if err := loop.Run(ctx); err != nil {
		// a fresh context: ctx may be the reason we are stopping
		recorder.Abort(context.Background(), err)
		reporter.Shutdown()
		grpcServer.Stop()

		msg := "game aborted"
		if errors.Is(err, context.Canceled) {
			msg = "interrupted"
		}
		log.Fatal().Err(err).Int("length", len(loop.Sequence())).Msg(msg)
	}

	log.Info().
		Int("length", len(loop.Sequence())).
		Dur("elapsed", time.Since(started)).
		Str("game_id", recorder.GameID()).
		Msg("victory")

	reporter.Shutdown()
	grpcServer.GracefulStop()
}

// startStatusServer serves the health service in the background
func startStatusServer(config Config, reporter *grpcAdapter.StatusReporter) (*grpc.Server, error) {
	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	if config.TLSCert != "" {
		tlsCfg, err := tlsconfig.LoadServerTLS(config.TLSCert, config.TLSKey, config.TLSCA)
		if err != nil {
			return nil, fmt.Errorf("load TLS config: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(tlsCfg)))
		log.Info().Bool("mtls", config.TLSCA != "").Msg("TLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, serving status without TLS")
	}

	grpcServer := grpc.NewServer(serverOpts...)
	healthpb.RegisterHealthServer(grpcServer, reporter.HealthServer())

	// Enable gRPC reflection for grpcurl testing
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", config.Port))
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	log.Info().Str("port", config.Port).Msg("status server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()
	return grpcServer, nil
}
