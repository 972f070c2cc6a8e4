package service

import (
	"context"
	"database/sql"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"

	"golang.org/x/crypto/bcrypt"
)

type AdminUserService struct {
	db               *sql.DB
	userRepo         *repository.UserRepository
	refreshTokenRepo *repository.RefreshTokenRepository
}

func NewAdminUserService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	refreshTokenRepo *repository.RefreshTokenRepository,
) *AdminUserService {
	return &AdminUserService{
		db:               db,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// List returns every account except the calling admin's own.
func (s *AdminUserService) List(ctx context.Context, excludeUsername string) ([]*dto.UserProfile, error) {
	caller, err := s.userRepo.FindByUsername(ctx, excludeUsername)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, excludeUsername)
	}

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*dto.UserProfile, 0, len(users))
	for _, user := range users {
		if user.ID == caller.ID {
			continue
		}
		profiles = append(profiles, toUserProfile(user))
	}
	return profiles, nil
}

func (s *AdminUserService) Get(ctx context.Context, id uint64) (*dto.UserProfile, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserProfile(user), nil
}

func (s *AdminUserService) Update(ctx context.Context, id uint64, password string, authority entity.Authority) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.UpdateCredentials(string(hashed), authority)
	return s.userRepo.Update(ctx, user)
}

// Delete removes the account and its refresh tokens in one transaction.
func (s *AdminUserService) Delete(ctx context.Context, id uint64) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.refreshTokenRepo.WithTx(tx).DeleteAllByUserID(ctx, user.ID); err != nil {
		return err
	}
	if err := s.userRepo.WithTx(tx).Delete(ctx, user.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *AdminUserService) findUser(ctx context.Context, id uint64) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Newf(apperror.CodeResourceNotFound, "user %d", id)
	}
	return user, nil
}
