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

type GenreService interface {
	Create(ctx context.Context, actor *permission.Actor, name, slug string) (*models.Genre, error)
	Update(ctx context.Context, actor *permission.Actor, slug, name string) (*models.Genre, error)
	Delete(ctx context.Context, actor *permission.Actor, slug string) error
	Get(ctx context.Context, slug string) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(ctx context.Context, actor *permission.Actor, name, slug string) (*models.Genre, error) {
	if err := authorize(actor, permission.ActionCreate, permission.ResourceGenre, ""); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("genre slug already in use: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Update(ctx context.Context, actor *permission.Actor, slug, name string) (*models.Genre, error) {
	if err := authorize(actor, permission.ActionUpdate, permission.ResourceGenre, ""); err != nil {
		return nil, err
	}

	genre, err := s.getOrNotFound(ctx, slug)
	if err != nil {
		return nil, err
	}

	genre.Name = name
	if err := s.genreRepo.Update(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// Delete removes the genre and its title associations; titles survive.
func (s *genreService) Delete(ctx context.Context, actor *permission.Actor, slug string) error {
	if err := authorize(actor, permission.ActionDelete, permission.ResourceGenre, ""); err != nil {
		return err
	}

	if err := s.genreRepo.Delete(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("genre %q: %w", slug, apperr.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *genreService) Get(ctx context.Context, slug string) (*models.Genre, error) {
	return s.getOrNotFound(ctx, slug)
}

func (s *genreService) List(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.GetAll(ctx)
}

func (s *genreService) getOrNotFound(ctx context.Context, slug string) (*models.Genre, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("genre %q: %w", slug, apperr.ErrNotFound)
		}
		return nil, err
	}
	return genre, nil
}
