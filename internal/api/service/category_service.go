package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/permission"
)

type CategoryService interface {
	Create(ctx context.Context, actor *permission.Actor, name, slug string) (*models.Category, error)
	Update(ctx context.Context, actor *permission.Actor, slug, name string) (*models.Category, error)
	Delete(ctx context.Context, actor *permission.Actor, slug string) error
	Get(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, actor *permission.Actor, name, slug string) (*models.Category, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceCategory, ""); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category name or slug already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor *permission.Actor, slug, name string) (*models.Category, error) {
	if err := authorize(actor, permission.ActionUpdate, permission.ResourceCategory, ""); err != nil {
		return nil, err
	}

	category, err := s.getOrNotFound(ctx, slug)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category name already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

// Delete leaves referencing titles in place with a null category.
func (s *categoryService) Delete(ctx context.Context, actor *permission.Actor, slug string) error {
	if err := authorize(actor, permission.ActionDelete, permission.ResourceCategory, ""); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %q: %w", slug, apperr.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *categoryService) Get(ctx context.Context, slug string) (*models.Category, error) {
	return s.getOrNotFound(ctx, slug)
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *categoryService) getOrNotFound(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %q: %w", slug, apperr.ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}
