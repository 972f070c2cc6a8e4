package service

import (
	"context"
	"time"

	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
)

// DailyOvereatService keeps one overeat level per day on a single shared
// ledger: when the caller is part of a connected pair, reads and writes land
// on the inviter's rows regardless of which side is acting.
type DailyOvereatService struct {
	overeatRepo *repository.DailyOvereatRepository
	pairService *PairService
}

func NewDailyOvereatService(overeatRepo *repository.DailyOvereatRepository, pairService *PairService) *DailyOvereatService {
	return &DailyOvereatService{overeatRepo: overeatRepo, pairService: pairService}
}

func (s *DailyOvereatService) List(ctx context.Context, username string, from, to time.Time) ([]*dto.DailyOvereatView, error) {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return nil, err
	}

	overeats, err := s.overeatRepo.FindAllByUserBetween(ctx, owner.ID, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.DailyOvereatView, 0, len(overeats))
	for _, overeat := range overeats {
		views = append(views, &dto.DailyOvereatView{
			Date:  overeat.Date,
			Level: string(overeat.Level),
		})
	}
	return views, nil
}

// Upsert sets the level for a date. NONE removes the row; levels are only
// stored when meaningful.
func (s *DailyOvereatService) Upsert(ctx context.Context, username string, date time.Time, level entity.OvereatLevel) error {
	owner, err := s.resolveOwner(ctx, username)
	if err != nil {
		return err
	}

	existing, err := s.overeatRepo.FindByUserAndDate(ctx, owner.ID, date)
	if err != nil {
		return err
	}

	if existing != nil {
		if level == entity.OvereatNone {
			return s.overeatRepo.Delete(ctx, existing.ID)
		}
		return s.overeatRepo.UpdateLevel(ctx, existing.ID, level)
	}

	if level == entity.OvereatNone {
		return nil
	}

	now := time.Now()
	return s.overeatRepo.Create(ctx, &entity.DailyOvereat{
		UserID:    owner.ID,
		Date:      date,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *DailyOvereatService) resolveOwner(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.pairService.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.pairService.ResolveRecordOwner(ctx, user)
}
