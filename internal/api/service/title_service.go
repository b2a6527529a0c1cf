package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/cache"
	"reviewhub/internal/permission"
)

// TitleInput carries client-settable title fields. Category and genres are
// referenced by slug; the rating is derived and never accepted here.
type TitleInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

type TitleService interface {
	Create(ctx context.Context, actor *permission.Actor, input TitleInput) (*models.Title, error)
	Update(ctx context.Context, actor *permission.Actor, id int64, input TitleInput) (*models.Title, error)
	Delete(ctx context.Context, actor *permission.Actor, id int64) error
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	titleCache   cache.TitleCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	titleCache cache.TitleCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		titleCache:   titleCache,
	}
}

func (s *titleService) Create(ctx context.Context, actor *permission.Actor, input TitleInput) (*models.Title, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceTitle, ""); err != nil {
		return nil, err
	}
	if input.Year < 1800 {
		return nil, fmt.Errorf("year must be 1800 or later: %w", apperr.ErrValidation)
	}

	title := &models.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if input.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return s.titleRepo.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, actor *permission.Actor, id int64, input TitleInput) (*models.Title, error) {
	if err := authorize(actor, permission.ActionUpdate, permission.ResourceTitle, ""); err != nil {
		return nil, err
	}

	title, err := s.getOrNotFound(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		title.Name = input.Name
	}
	if input.Year != 0 {
		if input.Year < 1800 {
			return nil, fmt.Errorf("year must be 1800 or later: %w", apperr.ErrValidation)
		}
		title.Year = input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		category, err := s.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	// Every slug resolves before anything is written, so a bad reference
	// leaves the title untouched.
	if input.GenreSlugs != nil {
		genres, err := s.resolveGenres(ctx, input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.UpdateWithGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	} else if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	s.titleCache.Invalidate(ctx, id)
	return s.titleRepo.GetByID(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, actor *permission.Actor, id int64) error {
	if err := authorize(actor, permission.ActionDelete, permission.ResourceTitle, ""); err != nil {
		return err
	}

	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("title %d: %w", id, apperr.ErrNotFound)
		}
		return err
	}

	s.titleCache.Invalidate(ctx, id)
	return nil
}

// Get serves reads through the cache.
func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	if title, ok := s.titleCache.Get(ctx, id); ok {
		return title, nil
	}

	title, err := s.getOrNotFound(ctx, id)
	if err != nil {
		return nil, err
	}

	s.titleCache.Set(ctx, title)
	return title, nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter, page, pageSize)
}

func (s *titleService) getOrNotFound(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("title %d: %w", id, apperr.ErrNotFound)
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("unknown category %q: %w", slug, apperr.ErrValidation)
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	// Repeated slugs collapse to one lookup each, so the count check below
	// only fires for slugs that truly do not exist.
	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, fmt.Errorf("unknown genre slug: %w", apperr.ErrValidation)
	}
	return genres, nil
}
