package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// AuthService implements registration, login, provider sign-in and sign-out.
type AuthService struct {
	repo      ports.AuthRepository
	revoker   ports.TokenRevoker
	notifier  ports.SessionNotifier
	jwtSecret string
	tokenTTL  time.Duration
	admins    map[string]struct{}
	logger    zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	revoker ports.TokenRevoker,
	notifier ports.SessionNotifier,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		revoker:   revoker,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		admins:    make(map[string]struct{}),
		logger:    logger,
	}
}

// WithAdmins grants the admin role to accounts registered with these emails.
func (s *AuthService) WithAdmins(emails ...string) *AuthService {
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			s.admins[e] = struct{}{}
		}
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, username, password, email, name string) (*domain.User, error) {
	email = normalizeEmail(email)
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		Name:         name,
		Provider:     domain.ProviderLocal,
		PasswordHash: string(hash),
		Role:         s.roleFor(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// SignInWithProvider upserts the account behind an external identity and
// issues a token for it.
func (s *AuthService) SignInWithProvider(ctx context.Context, profile domain.ProviderProfile) (string, *domain.User, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	username := profile.Name
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	now := time.Now().UTC()
	user, err := s.repo.UpsertByEmail(ctx, &domain.User{
		Username:  username,
		Email:     email,
		Name:      profile.Name,
		Provider:  profile.Provider,
		Role:      s.roleFor(email),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", nil, err
	}

	return s.startSession(ctx, user)
}

// SignOut revokes the token until its natural expiry and announces the
// session end to every listener of that user.
func (s *AuthService) SignOut(ctx context.Context, claims ports.TokenClaims) error {
	if claims.TokenID == "" || claims.Subject == "" {
		return domain.ErrAuthenticationRequired
	}

	if err := s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return err
	}

	s.publish(ctx, domain.SessionEvent{
		Kind:    domain.SessionSignedOut,
		UserID:  claims.Subject,
		TokenID: claims.TokenID,
		At:      time.Now().UTC(),
	})
	return nil
}

// Me returns the stored profile of the signed-in user.
func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	u, ok := identity.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrAuthenticationRequired
	}
	return s.repo.FindByID(ctx, u.ID)
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (string, *domain.User, error) {
	token, tokenID, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.publish(ctx, domain.SessionEvent{
		Kind:    domain.SessionSignedIn,
		UserID:  user.ID,
		TokenID: tokenID,
		User:    user,
		At:      time.Now().UTC(),
	})
	return token, user, nil
}

func (s *AuthService) publish(ctx context.Context, ev domain.SessionEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		s.logger.Warn().Err(err).Str("user_id", ev.UserID).Str("kind", string(ev.Kind)).Msg("session event not delivered")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, string, error) {
	now := time.Now()
	tokenID := uuid.NewString()
	claims := jwt.MapClaims{
		"jti":      tokenID,
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

func (s *AuthService) roleFor(email string) string {
	if _, ok := s.admins[email]; ok {
		return domain.RoleAdmin
	}
	return domain.RoleMember
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
