package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	findEventsByPairQuery = `(?s)SELECT id, pair_id, title, emoji, event_date, recurring, created_at, updated_at\s+FROM pair_events WHERE pair_id = \? ORDER BY event_date, id`
	findEventByIDQuery    = `(?s)SELECT id, pair_id, title, emoji, event_date, recurring, created_at, updated_at\s+FROM pair_events WHERE id = \?`
)

var pairEventColumns = []string{
	"id",
	"pair_id",
	"title",
	"emoji",
	"event_date",
	"recurring",
	"created_at",
	"updated_at",
}

func newPairEventService(db *sql.DB) *service.PairEventService {
	return service.NewPairEventService(repository.NewPairEventRepository(db), newPairService(db))
}

func expectConnectedPair(mock sqlmock.Sqlmock, username string, userID, pairID uint64) {
	now := time.Now()
	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs(username).
		WillReturnRows(userRow(userID, username, "hash", "USER"))
	mock.ExpectQuery(findPairByInviterStatus).
		WithArgs(userID, "CONNECTED").
		WillReturnRows(sqlmock.NewRows(pairColumns).AddRow(
			pairID, userID, int64(2), "AB12CD", "CONNECTED", now, now, now,
		))
}

func TestPairEventService_List_NotConnected(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	expectNotConnected(mock, 1)

	svc := newPairEventService(db)
	if _, err := svc.List(context.Background(), "hana", nil, nil); !apperror.IsCode(err, apperror.CodePairNotConnected) {
		t.Fatalf("expected PAIR_NOT_CONNECTED, got %v", err)
	}
}

func TestPairEventService_List_RecurringMatchesByMonthAndDay(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now()
	expectConnectedPair(mock, "hana", 1, 7)
	mock.ExpectQuery(findEventsByPairQuery).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(pairEventColumns).
			// Anniversary from years ago still lands inside an August window.
			AddRow(uint64(1), uint64(7), "Anniversary", "💍", time.Date(2020, 8, 15, 0, 0, 0, 0, time.UTC), true, now, now).
			AddRow(uint64(2), uint64(7), "Trip", "✈️", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), false, now, now).
			AddRow(uint64(3), uint64(7), "Dinner", "🍽️", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), false, now, now))

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	svc := newPairEventService(db)
	views, err := svc.List(context.Background(), "hana", &from, &to)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 events in window, got %d", len(views))
	}
	if views[0].Title != "Anniversary" || views[1].Title != "Dinner" {
		t.Fatalf("unexpected events: %q, %q", views[0].Title, views[1].Title)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPairEventService_Delete_OtherPairsEventInvisible(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now()
	expectConnectedPair(mock, "hana", 1, 7)
	mock.ExpectQuery(findEventByIDQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(pairEventColumns).AddRow(
			uint64(99), uint64(8), "Other", "", now, false, now, now,
		))

	svc := newPairEventService(db)
	if err := svc.Delete(context.Background(), "hana", 99); !apperror.IsCode(err, apperror.CodeResourceNotFound) {
		t.Fatalf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

func TestPairEventService_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	expectConnectedPair(mock, "hana", 1, 7)
	mock.ExpectExec(`(?s)INSERT INTO pair_events \(pair_id, title, emoji, event_date, recurring, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?\)`).
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := newPairEventService(db)
	id, err := svc.Create(context.Background(), "hana", service.PairEventParams{
		Title:     "Anniversary",
		Emoji:     "💍",
		EventDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Recurring: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected event id 5, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
