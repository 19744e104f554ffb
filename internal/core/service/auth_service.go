package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/metrics"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenIssuer
	bcryptCost int
	log        zerolog.Logger
	seed       func() int
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		seed:       func() int { return rand.IntN(domain.MaxEngagementSeed) },
	}
}

// Register hashes the password with a fresh bcrypt salt and persists the user.
// viewedProfile and impressions receive placeholder values in [0, 10000).
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "is required")
	}
	if in.Password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password", "must be at most 72 bytes")
		}
		return nil, err
	}

	friends := in.Friends
	if friends == nil {
		friends = []string{}
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         email,
		PasswordHash:  string(hash),
		PicturePath:   in.PicturePath,
		Friends:       friends,
		Location:      in.Location,
		Occupation:    in.Occupation,
		ViewedProfile: s.seed(),
		Impressions:   s.seed(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a bearer token. The returned user
// never carries the password hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "unknown_user").Inc()
			return "", nil, domain.NewAuthenticationError(domain.ErrUserNotFound)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		s.log.Warn().Str("user_id", user.ID).Msg("login rejected")
		return "", nil, domain.NewAuthenticationError(domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	user.PasswordHash = ""
	return token, user, nil
}
