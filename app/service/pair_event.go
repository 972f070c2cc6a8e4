package service

import (
	"context"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
)

// PairEventService manages a connected pair's shared calendar events.
type PairEventService struct {
	pairEventRepo *repository.PairEventRepository
	pairService   *PairService
}

func NewPairEventService(pairEventRepo *repository.PairEventRepository, pairService *PairService) *PairEventService {
	return &PairEventService{pairEventRepo: pairEventRepo, pairService: pairService}
}

type PairEventParams struct {
	Title     string
	Emoji     string
	EventDate time.Time
	Recurring bool
}

// List returns the pair's events, optionally windowed to [from, to].
// Recurring events match on month and day so anniversaries surface every
// year.
func (s *PairEventService) List(ctx context.Context, username string, from, to *time.Time) ([]*dto.PairEventView, error) {
	pair, err := s.requireConnectedPair(ctx, username)
	if err != nil {
		return nil, err
	}

	events, err := s.pairEventRepo.FindAllByPair(ctx, pair.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.PairEventView, 0, len(events))
	for _, event := range events {
		if from != nil && to != nil && !eventInWindow(event, *from, *to) {
			continue
		}
		views = append(views, &dto.PairEventView{
			ID:        event.ID,
			Title:     event.Title,
			Emoji:     event.Emoji,
			EventDate: event.EventDate,
			Recurring: event.Recurring,
		})
	}
	return views, nil
}

func (s *PairEventService) Create(ctx context.Context, username string, params PairEventParams) (uint64, error) {
	pair, err := s.requireConnectedPair(ctx, username)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	event := &entity.PairEvent{
		PairID:    pair.ID,
		Title:     params.Title,
		Emoji:     params.Emoji,
		EventDate: params.EventDate,
		Recurring: params.Recurring,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pairEventRepo.Create(ctx, event); err != nil {
		return 0, err
	}
	return event.ID, nil
}

func (s *PairEventService) Delete(ctx context.Context, username string, id uint64) error {
	pair, err := s.requireConnectedPair(ctx, username)
	if err != nil {
		return err
	}

	event, err := s.pairEventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil || event.PairID != pair.ID {
		// Another pair's events are invisible, not forbidden.
		return apperror.Newf(apperror.CodeResourceNotFound, "event %d", id)
	}

	return s.pairEventRepo.Delete(ctx, event.ID)
}

func (s *PairEventService) requireConnectedPair(ctx context.Context, username string) (*entity.PairConnection, error) {
	user, err := s.pairService.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	pair, err := s.pairService.FindConnectedPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, apperror.New(apperror.CodePairNotConnected, "")
	}
	return pair, nil
}

func eventInWindow(event *entity.PairEvent, from, to time.Time) bool {
	if !event.Recurring {
		return !event.EventDate.Before(from) && !event.EventDate.After(to)
	}
	md := int(event.EventDate.Month())*100 + event.EventDate.Day()
	fromMd := int(from.Month())*100 + from.Day()
	toMd := int(to.Month())*100 + to.Day()
	return md >= fromMd && md <= toMd
}
