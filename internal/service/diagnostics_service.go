package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
)

// Pinger verifies reachability of an external collaborator.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping calls the wrapped function.
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// DiagnosticsService runs the three connection checks for the status panel:
// credential load, ledger reachability and blob folder reachability. Each
// check is isolated, but a credential failure short-circuits the other two.
type DiagnosticsService interface {
	CheckConnections(ctx context.Context) dto.DiagnosticsResponse
}

type diagnosticsService struct {
	credentialsLoaded bool
	ledger            Pinger
	blob              Pinger
	logger            zerolog.Logger
}

// NewDiagnosticsService constructs the diagnostics service. credentialsLoaded
// reflects whether the blob-store client could be built from configuration at
// boot.
func NewDiagnosticsService(credentialsLoaded bool, ledger, blob Pinger, logger zerolog.Logger) DiagnosticsService {
	return &diagnosticsService{
		credentialsLoaded: credentialsLoaded,
		ledger:            ledger,
		blob:              blob,
		logger:            logger.With().Str("component", "diagnostics_service").Logger(),
	}
}

func (s *diagnosticsService) CheckConnections(ctx context.Context) dto.DiagnosticsResponse {
	status := dto.DiagnosticsResponse{}

	status.Credentials = s.credentialsLoaded
	if !status.Credentials {
		return status
	}

	if s.ledger != nil {
		if err := s.ledger.Ping(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("ledger unreachable")
		} else {
			status.Ledger = true
		}
	}

	if s.blob != nil {
		if err := s.blob.Ping(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("blob folder unreachable")
		} else {
			status.BlobFolder = true
		}
	}

	return status
}
