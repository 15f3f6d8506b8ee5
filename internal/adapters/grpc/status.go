package grpc

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/schubart/donald/internal/domain"
)

// GameService is the health service name that tracks the game itself
const GameService = "donald.Game"

// StatusReporter publishes game progress through the standard gRPC health service.
// The process-wide service "" stays SERVING until Shutdown; GameService is
// SERVING only while rounds are being played.
type StatusReporter struct {
	health *health.Server
}

// NewStatusReporter creates a reporter with the game not yet serving
func NewStatusReporter() *StatusReporter {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.SetServingStatus(GameService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &StatusReporter{health: h}
}

// HealthServer returns the server to register on a grpc.Server
func (s *StatusReporter) HealthServer() healthpb.HealthServer {
	return s.health
}

// StateChanged maps the game phase to the game service status
func (s *StatusReporter) StateChanged(ctx context.Context, state domain.GameState) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if state.InRound() {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(GameService, status)
}

// Calibrated is a no-op; thresholds are not exposed over health checks
func (s *StatusReporter) Calibrated(ctx context.Context, thresholds domain.ThresholdTable) {}

// ColorLearned logs at debug; the health protocol has no progress field
func (s *StatusReporter) ColorLearned(ctx context.Context, round int, color domain.Color) {
	log.Debug().Int("round", round).Msg("status: round in progress")
}

// Shutdown marks every service NOT_SERVING and ignores later updates
func (s *StatusReporter) Shutdown() {
	s.health.Shutdown()
}
