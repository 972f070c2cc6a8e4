package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileParams struct {
	Name            string
	Gender          *entity.Gender
	BirthDate       *time.Time
	Password        string
	CurrentPassword string
}

func (s *UserService) Me(ctx context.Context, username string) (*dto.UserProfile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, username)
	}
	return toUserProfile(user), nil
}

func (s *UserService) UpdateMe(ctx context.Context, username string, params UpdateProfileParams) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.New(apperror.CodeResourceNotFound, username)
	}

	gender := sql.NullString{}
	if params.Gender != nil {
		gender = sql.NullString{String: string(*params.Gender), Valid: true}
	}
	birthDate := sql.NullTime{}
	if params.BirthDate != nil {
		birthDate = sql.NullTime{Time: *params.BirthDate, Valid: true}
	}
	user.UpdateProfile(params.Name, gender, birthDate)

	if params.Password != "" {
		if params.CurrentPassword == "" {
			return apperror.New(apperror.CodeInvalidRequest, "currentPassword")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.CurrentPassword)); err != nil {
			return apperror.New(apperror.CodeInvalidRequest, "currentPassword")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.UpdatePassword(string(hashed))
	}

	return s.userRepo.Update(ctx, user)
}

func toUserProfile(user *entity.User) *dto.UserProfile {
	profile := &dto.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Authority: string(user.Authority),
	}
	if user.Gender.Valid {
		gender := user.Gender.String
		profile.Gender = &gender
	}
	if user.BirthDate.Valid {
		birthDate := user.BirthDate.Time
		profile.BirthDate = &birthDate
	}
	return profile
}
