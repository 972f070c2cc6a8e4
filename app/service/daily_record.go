package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
)

type DailyRecordService struct {
	recordRepo   *repository.DailyRecordRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
}

func NewDailyRecordService(
	recordRepo *repository.DailyRecordRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
) *DailyRecordService {
	return &DailyRecordService{
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

type DailyRecordParams struct {
	Date       time.Time
	CategoryID uint64
	Memo       string
	Together   bool
}

func (s *DailyRecordService) List(ctx context.Context, username string, date, from, to *time.Time) ([]*dto.DailyRecordView, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.FindAllByUser(ctx, user.ID, date, from, to)
	if err != nil {
		return nil, err
	}

	// Categories repeat across records; resolve each id once.
	categories := make(map[uint64]*entity.Category)
	views := make([]*dto.DailyRecordView, 0, len(records))
	for _, record := range records {
		category, ok := categories[record.CategoryID]
		if !ok {
			category, err = s.categoryRepo.FindByID(ctx, record.CategoryID)
			if err != nil {
				return nil, err
			}
			categories[record.CategoryID] = category
		}
		views = append(views, toDailyRecordView(record, category))
	}
	return views, nil
}

func (s *DailyRecordService) Create(ctx context.Context, username string, params DailyRecordParams) (uint64, error) {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return 0, err
	}

	category, err := s.categoryRepo.FindByID(ctx, params.CategoryID)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, apperror.Newf(apperror.CodeResourceNotFound, "category %d", params.CategoryID)
	}

	now := time.Now()
	record := &entity.DailyRecord{
		UserID:     user.ID,
		CategoryID: category.ID,
		Date:       params.Date,
		Memo:       nullableString(params.Memo),
		Together:   params.Together,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (s *DailyRecordService) Update(ctx context.Context, username string, id uint64, params DailyRecordParams) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	record, err := s.recordRepo.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.Newf(apperror.CodeResourceNotFound, "record %d", id)
	}

	category, err := s.categoryRepo.FindByID(ctx, params.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.Newf(apperror.CodeResourceNotFound, "category %d", params.CategoryID)
	}

	record.UpdateDetails(params.Date, category.ID, nullableString(params.Memo), params.Together)
	return s.recordRepo.Update(ctx, record)
}

func (s *DailyRecordService) Delete(ctx context.Context, username string, id uint64) error {
	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	record, err := s.recordRepo.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.Newf(apperror.CodeResourceNotFound, "record %d", id)
	}

	return s.recordRepo.Delete(ctx, record.ID)
}

func (s *DailyRecordService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeResourceNotFound, username)
	}
	return user, nil
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func toDailyRecordView(record *entity.DailyRecord, category *entity.Category) *dto.DailyRecordView {
	view := &dto.DailyRecordView{
		ID:       record.ID,
		Date:     record.Date,
		Together: record.Together,
	}
	if record.Memo.Valid {
		memo := record.Memo.String
		view.Memo = &memo
	}
	if category != nil {
		view.Category = *toCategoryView(category)
	}
	return view
}
