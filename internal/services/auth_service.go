package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/laksham-labs/assessment-portal/internal/config"
	"github.com/laksham-labs/assessment-portal/internal/models"
	"github.com/laksham-labs/assessment-portal/internal/notifications"
	"github.com/laksham-labs/assessment-portal/internal/repositories"
	"github.com/laksham-labs/assessment-portal/internal/validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	mailer    notifications.Mailer
	jwtCfg    config.JWTConfig
	verifyURL string
	tokenTTL  time.Duration
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, mailer notifications.Mailer, cfg *config.Config) AuthService {
	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		mailer:    mailer,
		jwtCfg:    cfg.JWT,
		verifyURL: cfg.Email.VerifyBaseURL,
		tokenTTL:  cfg.TokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	s.logger.Info("Registering user", "email", req.Email)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		HashedPassword: string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	}

	var rawToken string
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		rawToken, err = s.issueVerificationToken(ctx, txRepo, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.sendVerificationMail(ctx, user, rawToken)

	s.logger.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	hash := hashToken(token)

	record, err := s.repo.VerificationToken().GetByHash(ctx, nil, hash)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	if !record.Usable(time.Now()) {
		return nil, ErrInvalidToken
	}

	var user *models.User
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.VerificationToken().MarkConsumed(ctx, nil, record.ID, time.Now()); err != nil {
			return fmt.Errorf("failed to consume token: %w", err)
		}

		user, err = txRepo.User().GetByID(ctx, nil, record.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		user.IsVerified = true
		if err := txRepo.User().Update(ctx, nil, user); err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Email verified", "user_id", user.ID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}

	expiresAt := time.Now().Add(s.jwtCfg.Expiry)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.User().GetByEmail(ctx, nil, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Do not reveal whether the address is registered
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.IsVerified {
		return nil
	}

	var rawToken string
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		rawToken, err = s.issueVerificationToken(ctx, txRepo, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.sendVerificationMail(ctx, user, rawToken)
	return nil
}

// PurgeExpiredTokens removes verification tokens past their expiry. Called
// from the cron sweeper.
func (s *authService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	purged, err := s.repo.VerificationToken().DeleteExpired(ctx, nil, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge tokens: %w", err)
	}
	if purged > 0 {
		s.logger.Info("Purged expired verification tokens", "count", purged)
	}
	return purged, nil
}

// ===== HELPERS =====

// issueVerificationToken stores a hashed token and returns the raw value
// for the email link. Only the SHA-256 digest ever touches the database.
func (s *authService) issueVerificationToken(ctx context.Context, txRepo repositories.Repository, userID uint) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw := hex.EncodeToString(buf)

	record := &models.VerificationToken{
		UserID:    userID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := txRepo.VerificationToken().Create(ctx, nil, record); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return raw, nil
}

func (s *authService) sendVerificationMail(ctx context.Context, user *models.User, rawToken string) {
	verifyURL := fmt.Sprintf("%s?token=%s", s.verifyURL, rawToken)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.FullName(), verifyURL); err != nil {
		s.logger.Error("Failed to send verification email", "user_id", user.ID, "error", err)
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
