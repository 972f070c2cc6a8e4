package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	"github.com/haneul-labs/daily-record/app/dto"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/repository"
)

type CategoryService struct {
	db           *sql.DB
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(db *sql.DB, categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{db: db, categoryRepo: categoryRepo}
}

type CategoryParams struct {
	Emoji    string
	Name     string
	IsActive bool
}

func (s *CategoryService) List(ctx context.Context, active *bool) ([]*dto.CategoryView, error) {
	categories, err := s.categoryRepo.FindAllOrdered(ctx, active)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, toCategoryView(category))
	}
	return views, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint64) (*dto.CategoryView, error) {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryView(category), nil
}

// Create appends the category at the end of the ordering.
func (s *CategoryService) Create(ctx context.Context, params CategoryParams) (*dto.CategoryView, error) {
	if err := validateCategoryParams(params); err != nil {
		return nil, err
	}

	maxOrder, err := s.categoryRepo.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := &entity.Category{
		Emoji:     params.Emoji,
		Name:      params.Name,
		IsActive:  params.IsActive,
		SortOrder: maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return toCategoryView(category), nil
}

func (s *CategoryService) Update(ctx context.Context, id uint64, params CategoryParams) error {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := validateCategoryParams(params); err != nil {
		return err
	}

	category.UpdateDetails(params.Emoji, params.Name, params.IsActive)
	return s.categoryRepo.Update(ctx, category)
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}

// Move reorders targetID to sit before beforeID (or last when beforeID is
// nil) and renumbers the whole list 1..n in one transaction.
func (s *CategoryService) Move(ctx context.Context, targetID uint64, beforeID *uint64) error {
	if beforeID != nil && *beforeID == targetID {
		return apperror.New(apperror.CodeInvalidRequest, "targetId")
	}

	categories, err := s.categoryRepo.FindAllOrdered(ctx, nil)
	if err != nil {
		return err
	}

	targetIndex := -1
	for i, category := range categories {
		if category.ID == targetID {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		return apperror.Newf(apperror.CodeResourceNotFound, "category %d", targetID)
	}

	target := categories[targetIndex]
	categories = append(categories[:targetIndex], categories[targetIndex+1:]...)

	insertIndex := len(categories)
	if beforeID != nil {
		insertIndex = -1
		for i, category := range categories {
			if category.ID == *beforeID {
				insertIndex = i
				break
			}
		}
		if insertIndex < 0 {
			return apperror.Newf(apperror.CodeResourceNotFound, "category %d", *beforeID)
		}
	}

	categories = append(categories, nil)
	copy(categories[insertIndex+1:], categories[insertIndex:])
	categories[insertIndex] = target

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	txRepo := s.categoryRepo.WithTx(tx)
	for i, category := range categories {
		category.UpdateSortOrder(i + 1)
		if err := txRepo.Update(ctx, category); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *CategoryService) findCategory(ctx context.Context, id uint64) (*entity.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.Newf(apperror.CodeResourceNotFound, "category %d", id)
	}
	return category, nil
}

func validateCategoryParams(params CategoryParams) error {
	if strings.TrimSpace(params.Emoji) == "" {
		return apperror.New(apperror.CodeInvalidRequest, "emoji")
	}
	if strings.TrimSpace(params.Name) == "" {
		return apperror.New(apperror.CodeInvalidRequest, "name")
	}
	return nil
}

func toCategoryView(category *entity.Category) *dto.CategoryView {
	return &dto.CategoryView{
		ID:        category.ID,
		Emoji:     category.Emoji,
		Name:      category.Name,
		IsActive:  category.IsActive,
		SortOrder: category.SortOrder,
	}
}
