package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	findOvereatByUserDate    = `(?s)SELECT id, user_id, date, level, created_at, updated_at\s+FROM daily_overeats WHERE user_id = \? AND date = \?`
	findOvereatsBetweenQuery = `(?s)SELECT id, user_id, date, level, created_at, updated_at\s+FROM daily_overeats\s+WHERE user_id = \? AND date >= \? AND date <= \?\s+ORDER BY date`
	insertOvereatQuery       = `(?s)INSERT INTO daily_overeats \(user_id, date, level, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?\)`
	deleteOvereatQuery       = `DELETE FROM daily_overeats WHERE id = \?`
)

var overeatColumns = []string{
	"id",
	"user_id",
	"date",
	"level",
	"created_at",
	"updated_at",
}

func newOvereatService(db *sql.DB) *service.DailyOvereatService {
	return service.NewDailyOvereatService(repository.NewDailyOvereatRepository(db), newPairService(db))
}

func expectOwnerResolution(mock sqlmock.Sqlmock, username string, userID uint64) {
	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs(username).
		WillReturnRows(userRow(userID, username, "hash", "USER"))
	expectNotConnected(mock, userID)
}

func TestDailyOvereatService_Upsert_NoneWithoutRowIsNoOp(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	expectOwnerResolution(mock, "hana", 1)
	mock.ExpectQuery(findOvereatByUserDate).
		WithArgs(uint64(1), date).
		WillReturnError(sql.ErrNoRows)

	svc := newOvereatService(db)
	if err := svc.Upsert(context.Background(), "hana", date, entity.OvereatNone); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDailyOvereatService_Upsert_NoneDeletesExistingRow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	expectOwnerResolution(mock, "hana", 1)
	mock.ExpectQuery(findOvereatByUserDate).
		WithArgs(uint64(1), date).
		WillReturnRows(sqlmock.NewRows(overeatColumns).AddRow(
			uint64(9), uint64(1), date, "MILD", now, now,
		))
	mock.ExpectExec(deleteOvereatQuery).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := newOvereatService(db)
	if err := svc.Upsert(context.Background(), "hana", date, entity.OvereatNone); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDailyOvereatService_Upsert_CreatesRow(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	expectOwnerResolution(mock, "hana", 1)
	mock.ExpectQuery(findOvereatByUserDate).
		WithArgs(uint64(1), date).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(insertOvereatQuery).
		WithArgs(uint64(1), date, "SEVERE", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	svc := newOvereatService(db)
	if err := svc.Upsert(context.Background(), "hana", date, entity.OvereatSevere); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDailyOvereatService_List_PartnerReadsInviterLedger(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("minsu").
		WillReturnRows(userRow(2, "minsu", "hash", "USER"))
	mock.ExpectQuery(findPairByInviterStatus).
		WithArgs(uint64(2), "CONNECTED").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(findPairByPartnerStatus).
		WithArgs(uint64(2), "CONNECTED").
		WillReturnRows(sqlmock.NewRows(pairColumns).AddRow(
			uint64(7), uint64(1), int64(2), "AB12CD", "CONNECTED", now, now, now,
		))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	mock.ExpectQuery(findOvereatsBetweenQuery).
		WithArgs(uint64(1), from, to).
		WillReturnRows(sqlmock.NewRows(overeatColumns).AddRow(
			uint64(9), uint64(1), from.AddDate(0, 0, 14), "MILD", now, now,
		))

	svc := newOvereatService(db)
	views, err := svc.List(context.Background(), "minsu", from, to)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].Level != "MILD" {
		t.Fatalf("expected MILD, got %q", views[0].Level)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
