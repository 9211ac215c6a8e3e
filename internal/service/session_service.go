package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
)

// ErrInvalidPasscode rejects a login attempt with an unknown passcode.
var ErrInvalidPasscode = errors.New("invalid passcode")

// Session roles. The team role submits inspections; the admin role also edits
// semester settings and reads the audit trail.
const (
	RoleTeam  = "team"
	RoleAdmin = "admin"
)

// SessionService exchanges shared role passcodes for session tokens.
type SessionService interface {
	Login(passcode string) (dto.LoginResponse, error)
}

type sessionService struct {
	teamPasscode  string
	adminPasscode string
	secret        []byte
	ttl           time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// NewSessionService constructs the passcode gate.
func NewSessionService(teamPasscode, adminPasscode, secret string, ttl time.Duration, logger zerolog.Logger) SessionService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &sessionService{
		teamPasscode:  teamPasscode,
		adminPasscode: adminPasscode,
		secret:        []byte(secret),
		ttl:           ttl,
		logger:        logger.With().Str("component", "session_service").Logger(),
		now:           time.Now,
	}
}

func (s *sessionService) Login(passcode string) (dto.LoginResponse, error) {
	role := s.resolveRole(passcode)
	if role == "" {
		return dto.LoginResponse{}, ErrInvalidPasscode
	}

	sessionID := uuid.NewString()
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":       role,
		"session_id": sessionID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("role", role).Str("session_id", sessionID).Msg("session opened")

	return dto.LoginResponse{
		Token:     signed,
		Role:      role,
		SessionID: sessionID,
		ExpiresIn: int64(s.ttl.Seconds()),
	}, nil
}

func (s *sessionService) resolveRole(passcode string) string {
	if s.adminPasscode != "" && subtleConstantTimeCompare(passcode, s.adminPasscode) {
		return RoleAdmin
	}
	if s.teamPasscode != "" && subtleConstantTimeCompare(passcode, s.teamPasscode) {
		return RoleTeam
	}
	return ""
}
