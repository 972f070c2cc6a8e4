package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/config"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns registration, credential checks and the token-issuance
// protocol: one active refresh token per user, rotated wholesale on every
// login and refresh.
type AuthService struct {
	db               *sql.DB
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
	codec            *TokenCodec
	cfg              *config.Config
}

func NewAuthService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	refreshTokenRepo *repository.RefreshTokenRepository,
	codec *TokenCodec,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:               db,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		codec:            codec,
		cfg:              cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, username, name, password string) (uint64, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperror.New(apperror.CodeDuplicateResource, username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	user := &entity.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Authority:    entity.AuthorityUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}

	return user.ID, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*dto.TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(apperror.CodeInvalidRequest, "password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the full token pair. The presented token must resolve to a
// non-revoked, unexpired row by hash; anything else is an invalid request.
func (s *AuthService) Refresh(ctx context.Context, rawRefreshToken string) (*dto.TokenPair, error) {
	hashed := HashToken(rawRefreshToken)
	token, err := s.refreshTokenRepo.FindActiveByHash(ctx, hashed, time.Now())
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, apperror.New(apperror.CodeInvalidRequest, "refreshToken")
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeInvalidRequest, "refreshToken")
	}

	return s.issueTokens(ctx, user)
}

// Logout drops every session of the token's owner when a valid token is
// presented, and is a no-op otherwise. It never fails on bad input: clearing
// cookies is the caller's unconditional follow-up.
func (s *AuthService) Logout(ctx context.Context, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return nil
	}

	hashed := HashToken(rawRefreshToken)
	token, err := s.refreshTokenRepo.FindActiveByHash(ctx, hashed, time.Now())
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}

	return s.refreshTokenRepo.DeleteAllByUserID(ctx, token.UserID)
}

// issueTokens runs the issuance protocol in one transaction: purge the
// user's previous refresh tokens, sign a fresh access token, mint an opaque
// refresh token and persist only its hash.
func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenPair, error) {
	accessToken, err := s.codec.SignAccessToken(user.Username, user.Authority)
	if err != nil {
		return nil, err
	}

	rawRefreshToken := NewRefreshTokenString()
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txRefreshRepo := s.refreshTokenRepo.WithTx(tx)
	if err := txRefreshRepo.DeleteAllByUserID(ctx, user.ID); err != nil {
		return nil, err
	}

	refreshToken := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: HashToken(rawRefreshToken),
		ExpiresAt: now.Add(time.Duration(s.cfg.RefreshTokenExpireDays) * 24 * time.Hour),
		CreatedAt: now,
	}
	if err := txRefreshRepo.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     rawRefreshToken,
		AccessMaxAgeSec:  s.codec.AccessTokenMaxAgeSeconds(),
		RefreshMaxAgeSec: s.codec.RefreshTokenMaxAgeSeconds(),
	}, nil
}
