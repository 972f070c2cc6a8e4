package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

const updateUserQuery = `(?s)UPDATE users SET\s+name = \?,\s+password_hash = \?,\s+authority = \?,\s+gender = \?,\s+birth_date = \?,\s+updated_at = \?\s+WHERE id = \?`

func TestUserService_Me(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))

	svc := service.NewUserService(repository.NewUserRepository(db))
	profile, err := svc.Me(context.Background(), "hana")
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if profile.Username != "hana" || profile.Authority != "USER" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestUserService_UpdateMe_PasswordRequiresCurrent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))

	svc := service.NewUserService(repository.NewUserRepository(db))
	err := svc.UpdateMe(context.Background(), "hana", service.UpdateProfileParams{
		Name:     "Hana",
		Password: "newpassword",
	})
	if !apperror.IsCode(err, apperror.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestUserService_UpdateMe_WrongCurrentPassword(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", string(hashed), "USER"))

	svc := service.NewUserService(repository.NewUserRepository(db))
	err = svc.UpdateMe(context.Background(), "hana", service.UpdateProfileParams{
		Name:            "Hana",
		Password:        "newpassword",
		CurrentPassword: "wrong",
	})
	if !apperror.IsCode(err, apperror.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}

func TestUserService_UpdateMe(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	mock.ExpectExec(updateUserQuery).
		WillReturnResult(sqlmock.NewResult(0, 1))

	gender := entity.GenderFemale
	birthDate := time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC)
	svc := service.NewUserService(repository.NewUserRepository(db))
	err := svc.UpdateMe(context.Background(), "hana", service.UpdateProfileParams{
		Name:      "Hana Kim",
		Gender:    &gender,
		BirthDate: &birthDate,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
