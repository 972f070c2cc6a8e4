package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	findPairByInviterStatus = `(?s)SELECT id, inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at\s+FROM pairs WHERE inviter_id = \? AND status = \?`
	findPairByPartnerStatus = `(?s)SELECT id, inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at\s+FROM pairs WHERE partner_id = \? AND status = \?`
	findPairByInviteCode    = `(?s)SELECT id, inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at\s+FROM pairs WHERE invite_code = \?`
	findPairAnyByInviter    = `(?s)SELECT id, inviter_id, partner_id, invite_code, status, connected_at, created_at, updated_at\s+FROM pairs WHERE inviter_id = \? AND status IN \('PENDING', 'CONNECTED'\)`
	acceptPendingPairQuery  = `(?s)UPDATE pairs SET\s+partner_id = \?,\s+status = 'CONNECTED',\s+connected_at = \?,\s+updated_at = \?\s+WHERE id = \? AND status = 'PENDING'`
)

var pairColumns = []string{
	"id",
	"inviter_id",
	"partner_id",
	"invite_code",
	"status",
	"connected_at",
	"created_at",
	"updated_at",
}

func newPairService(db *sql.DB) *service.PairService {
	userRepo := repository.NewUserRepository(db)
	pairRepo := repository.NewPairRepository(db)
	pairEventRepo := repository.NewPairEventRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	recordRepo := repository.NewDailyRecordRepository(db)
	recordService := service.NewDailyRecordService(recordRepo, categoryRepo, userRepo)
	return service.NewPairService(db, pairRepo, userRepo, pairEventRepo, recordService, testConfig())
}

func userEntity(id uint64, username string) *entity.User {
	return &entity.User{
		ID:       id,
		Username: username,
		Name:     "Name",
	}
}

func pendingPairRow(pairID, inviterID uint64, code string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(pairColumns).AddRow(
		pairID,
		inviterID,
		nil,
		code,
		"PENDING",
		nil,
		now,
		now,
	)
}

func expectNotConnected(mock sqlmock.Sqlmock, userID uint64) {
	mock.ExpectQuery(findPairByInviterStatus).
		WithArgs(userID, "CONNECTED").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(findPairByPartnerStatus).
		WithArgs(userID, "CONNECTED").
		WillReturnError(sql.ErrNoRows)
}

func TestPairService_CreateInvite_ReturnsExistingPendingCode(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	expectNotConnected(mock, 1)
	mock.ExpectQuery(findPairByInviterStatus).
		WithArgs(uint64(1), "PENDING").
		WillReturnRows(pendingPairRow(7, 1, "AB12CD"))

	svc := newPairService(db)
	code, err := svc.CreateInvite(context.Background(), "hana")
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}
	if code != "AB12CD" {
		t.Fatalf("expected existing code AB12CD, got %q", code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPairService_CreateInvite_AlreadyPaired(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	mock.ExpectQuery(findPairByInviterStatus).
		WithArgs(uint64(1), "CONNECTED").
		WillReturnRows(sqlmock.NewRows(pairColumns).AddRow(
			uint64(7), uint64(1), int64(2), "AB12CD", "CONNECTED", now, now, now,
		))

	svc := newPairService(db)
	if _, err := svc.CreateInvite(context.Background(), "hana"); !apperror.IsCode(err, apperror.CodeAlreadyPaired) {
		t.Fatalf("expected ALREADY_PAIRED, got %v", err)
	}
}

func TestPairService_AcceptInvite_OwnInvite(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	expectNotConnected(mock, 1)
	mock.ExpectQuery(findPairByInviteCode).
		WithArgs("AB12CD").
		WillReturnRows(pendingPairRow(7, 1, "AB12CD"))

	svc := newPairService(db)
	if _, err := svc.AcceptInvite(context.Background(), "hana", "AB12CD"); !apperror.IsCode(err, apperror.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST for self-accept, got %v", err)
	}
}

func TestPairService_AcceptInvite_UnknownCode(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("minsu").
		WillReturnRows(userRow(2, "minsu", "hash", "USER"))
	expectNotConnected(mock, 2)
	mock.ExpectQuery(findPairByInviteCode).
		WithArgs("ZZZZZZ").
		WillReturnError(sql.ErrNoRows)

	svc := newPairService(db)
	if _, err := svc.AcceptInvite(context.Background(), "minsu", "ZZZZZZ"); !apperror.IsCode(err, apperror.CodeResourceNotFound) {
		t.Fatalf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

func TestPairService_AcceptInvite_LostRace(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("minsu").
		WillReturnRows(userRow(2, "minsu", "hash", "USER"))
	expectNotConnected(mock, 2)
	mock.ExpectQuery(findPairByInviteCode).
		WithArgs("AB12CD").
		WillReturnRows(pendingPairRow(7, 1, "AB12CD"))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	expectNotConnected(mock, 1)
	mock.ExpectExec(acceptPendingPairQuery).
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := newPairService(db)
	if _, err := svc.AcceptInvite(context.Background(), "minsu", "AB12CD"); !apperror.IsCode(err, apperror.CodeInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST when the race is lost, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPairService_AcceptInvite(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("minsu").
		WillReturnRows(userRow(2, "minsu", "hash", "USER"))
	expectNotConnected(mock, 2)
	mock.ExpectQuery(findPairByInviteCode).
		WithArgs("AB12CD").
		WillReturnRows(pendingPairRow(7, 1, "AB12CD"))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	expectNotConnected(mock, 1)
	mock.ExpectExec(acceptPendingPairQuery).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(userRow(1, "hana", "hash", "USER"))

	svc := newPairService(db)
	view, err := svc.AcceptInvite(context.Background(), "minsu", "AB12CD")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if view.Status != "CONNECTED" {
		t.Fatalf("expected CONNECTED, got %q", view.Status)
	}
	if view.PartnerName == nil || *view.PartnerName != "Name" {
		t.Fatalf("expected partner name, got %+v", view.PartnerName)
	}
	if view.ConnectedAt == nil {
		t.Fatal("expected connected_at to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPairService_GetStatus_NoPair(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	mock.ExpectQuery(findPairAnyByInviter).
		WithArgs(uint64(1)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(findPairByPartnerStatus).
		WithArgs(uint64(1), "CONNECTED").
		WillReturnError(sql.ErrNoRows)

	svc := newPairService(db)
	view, err := svc.GetStatus(context.Background(), "hana")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil view, got %+v", view)
	}
}

func TestPairService_Unpair(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(findUserByUsernameQuery).
		WithArgs("hana").
		WillReturnRows(userRow(1, "hana", "hash", "USER"))
	mock.ExpectQuery(findPairAnyByInviter).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(pairColumns).AddRow(
			uint64(7), uint64(1), int64(2), "AB12CD", "CONNECTED", now, now, now,
		))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM pair_events WHERE pair_id = \?`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM pairs WHERE id = \?`).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := newPairService(db)
	if err := svc.Unpair(context.Background(), "hana"); err != nil {
		t.Fatalf("unpair failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPairService_ResolveRecordOwner_RedirectsPartnerToInviter(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	now := time.Now()
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

	svc := newPairService(db)
	owner, err := svc.ResolveRecordOwner(context.Background(), userEntity(2, "minsu"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if owner.ID != 1 {
		t.Fatalf("expected inviter to own the ledger, got user %d", owner.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
