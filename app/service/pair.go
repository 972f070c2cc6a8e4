package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
	"github.com/haneul-labs/daily-record/config"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const inviteCodeLength = 6

type partnerRecordLister interface {
	List(ctx context.Context, username string, date, from, to *time.Time) ([]*dto.DailyRecordView, error)
}

// PairService drives the PENDING -> CONNECTED -> deleted lifecycle of a pair
// and resolves which user's data a paired caller operates on.
type PairService struct {
	db            *sql.DB
	pairRepo      *repository.PairRepository
	userRepo      *repository.UserRepository
	pairEventRepo *repository.PairEventRepository
	records       partnerRecordLister
	cfg           *config.Config
}

func NewPairService(
	db *sql.DB,
	pairRepo *repository.PairRepository,
	userRepo *repository.UserRepository,
	pairEventRepo *repository.PairEventRepository,
	records partnerRecordLister,
	cfg *config.Config,
) *PairService {
	return &PairService{
		db:            db,
		pairRepo:      pairRepo,
		userRepo:      userRepo,
		pairEventRepo: pairEventRepo,
		records:       records,
		cfg:           cfg,
	}
}

// CreateInvite mints an invite code for an unconnected user. Re-requesting
// while a PENDING invite exists returns the same code.
func (s *PairService) CreateInvite(ctx context.Context, username string) (string, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return "", err
	}

	connected, err := s.isConnected(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if connected {
		return "", apperror.New(apperror.CodeAlreadyPaired, user.Name)
	}

	existing, err := s.pairRepo.FindByInviterAndStatus(ctx, user.ID, entity.PairStatusPending)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.InviteCode, nil
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	pair := &entity.PairConnection{
		InviterID:  user.ID,
		InviteCode: code,
		Status:     entity.PairStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.pairRepo.Create(ctx, pair); err != nil {
		return "", err
	}

	return code, nil
}

func (s *PairService) AcceptInvite(ctx context.Context, username, inviteCode string) (*dto.PairView, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	connected, err := s.isConnected(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, apperror.New(apperror.CodeAlreadyPaired, user.Name)
	}

	pair, err := s.pairRepo.FindByInviteCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, "inviteCode")
	}

	if pair.InviterID == user.ID {
		return nil, apperror.New(apperror.CodeInvalidRequest, "cannot accept your own invite")
	}

	if pair.Status != entity.PairStatusPending {
		return nil, apperror.New(apperror.CodeInvalidRequest, "invite already accepted")
	}

	inviter, err := s.userRepo.FindByID(ctx, pair.InviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, "inviter")
	}

	inviterConnected, err := s.isConnected(ctx, inviter.ID)
	if err != nil {
		return nil, err
	}
	if inviterConnected {
		return nil, apperror.New(apperror.CodeAlreadyPaired, inviter.Name)
	}

	now := time.Now()
	affected, err := s.pairRepo.AcceptPending(ctx, pair.ID, user.ID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race against a concurrent accept.
		return nil, apperror.New(apperror.CodeInvalidRequest, "invite already accepted")
	}

	pair.Accept(user.ID, now)
	return s.toPairView(ctx, pair, user.ID)
}

// GetStatus returns the caller's pair resolved relative to them, or nil when
// no PENDING or CONNECTED pair involves them.
func (s *PairService) GetStatus(ctx context.Context, username string) (*dto.PairView, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	pair, err := s.findActivePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, nil
	}

	return s.toPairView(ctx, pair, user.ID)
}

// Unpair deletes the pair row and its events; both sides lose the connection
// at once.
func (s *PairService) Unpair(ctx context.Context, username string) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	pair, err := s.findActivePair(ctx, user.ID)
	if err != nil {
		return err
	}
	if pair == nil {
		return apperror.New(apperror.CodeResourceNotFound, "pair")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.pairEventRepo.WithTx(tx).DeleteAllByPair(ctx, pair.ID); err != nil {
		return err
	}
	if err := s.pairRepo.WithTx(tx).Delete(ctx, pair.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetPartnerDailyRecords lists the records of the caller's counterpart. This
// is the one paired view that deliberately reads the *other* side instead of
// the shared ledger.
func (s *PairService) GetPartnerDailyRecords(ctx context.Context, username string, date, from, to *time.Time) ([]*dto.DailyRecordView, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	pair, err := s.FindConnectedPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, apperror.New(apperror.CodePairNotConnected, "")
	}

	otherID, ok := pair.OtherUserID(user.ID)
	if !ok {
		return nil, apperror.New(apperror.CodePairNotConnected, "")
	}

	other, err := s.userRepo.FindByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, apperror.New(apperror.CodePairNotConnected, "")
	}

	return s.records.List(ctx, other.Username, date, from, to)
}

// FindConnectedPair is the lookup downstream features use to route a paired
// user's data; nil means the user is not connected.
func (s *PairService) FindConnectedPair(ctx context.Context, userID uint64) (*entity.PairConnection, error) {
	pair, err := s.pairRepo.FindByInviterAndStatus(ctx, userID, entity.PairStatusConnected)
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return pair, nil
	}
	return s.pairRepo.FindByPartnerAndStatus(ctx, userID, entity.PairStatusConnected)
}

// ResolveRecordOwner returns the user whose rows a shared feature should read
// and write: the inviter of a connected pair is the canonical owner, a
// partner is redirected onto the inviter's ledger.
func (s *PairService) ResolveRecordOwner(ctx context.Context, user *entity.User) (*entity.User, error) {
	pair, err := s.FindConnectedPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if pair == nil || pair.InviterID == user.ID {
		return user, nil
	}

	inviter, err := s.userRepo.FindByID(ctx, pair.InviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, "inviter")
	}
	return inviter, nil
}

func (s *PairService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, username)
	}
	return user, nil
}

func (s *PairService) isConnected(ctx context.Context, userID uint64) (bool, error) {
	pair, err := s.FindConnectedPair(ctx, userID)
	if err != nil {
		return false, err
	}
	return pair != nil, nil
}

// findActivePair covers the caller as inviter of a PENDING or CONNECTED pair,
// or as partner of a CONNECTED one.
func (s *PairService) findActivePair(ctx context.Context, userID uint64) (*entity.PairConnection, error) {
	pair, err := s.pairRepo.FindAnyByInviter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pair != nil {
		return pair, nil
	}
	return s.pairRepo.FindByPartnerAndStatus(ctx, userID, entity.PairStatusConnected)
}

func (s *PairService) generateUniqueCode(ctx context.Context) (string, error) {
	attempts := s.cfg.InviteCodeMaxAttempts
	if attempts <= 0 {
		attempts = 10
	}
	for i := 0; i < attempts; i++ {
		code, err := newInviteCode()
		if err != nil {
			return "", err
		}
		existing, err := s.pairRepo.FindByInviteCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", apperror.New(apperror.CodeInvalidRequest, "invite code generation failed")
}

func newInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(buf), nil
}

func (s *PairService) toPairView(ctx context.Context, pair *entity.PairConnection, viewerID uint64) (*dto.PairView, error) {
	view := &dto.PairView{
		ID:     pair.ID,
		Status: string(pair.Status),
	}
	if pair.ConnectedAt.Valid {
		connectedAt := pair.ConnectedAt.Time
		view.ConnectedAt = &connectedAt
	}

	otherID, ok := pair.OtherUserID(viewerID)
	if !ok {
		return view, nil
	}

	other, err := s.userRepo.FindByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return view, nil
	}

	view.PartnerName = &other.Name
	if other.Gender.Valid {
		gender := other.Gender.String
		view.PartnerGender = &gender
	}
	if other.BirthDate.Valid {
		birthDate := other.BirthDate.Time
		view.PartnerBirthDate = &birthDate
	}
	return view, nil
}
