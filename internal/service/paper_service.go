package service

import (
	"context"
	"time"

	"newsroom/internal/cache"
	"newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

// PaperInput is the payload for creating an edition.
type PaperInput struct {
	Date          time.Time
	NamePaper     string
	NamePublisher string
}

// PaperUpdate carries the fields to change; nil fields are kept.
type PaperUpdate struct {
	Date          *time.Time
	NamePaper     *string
	NamePublisher *string
}

// PaperService manages editions.
type PaperService interface {
	List(ctx context.Context) ([]model.Paper, error)
	ListByDate(ctx context.Context, day time.Time) ([]model.Paper, error)
	Get(ctx context.Context, id uint) (*model.Paper, error)
	Create(ctx context.Context, actor model.Actor, in PaperInput) (*model.Paper, error)
	Update(ctx context.Context, actor model.Actor, id uint, in PaperUpdate) (*model.Paper, error)
	Delete(ctx context.Context, actor model.Actor, id uint) error
	EnsureEdition(ctx context.Context, day time.Time, name, publisher string) (*model.Paper, bool, error)
}

type paperService struct {
	repo  repository.PaperRepository
	cache cache.Store
}

// NewPaperService creates a new paper service.
func NewPaperService(repo repository.PaperRepository, cache cache.Store) PaperService {
	return &paperService{repo: repo, cache: cache}
}

func (s *paperService) List(ctx context.Context) ([]model.Paper, error) {
	return s.repo.List(ctx)
}

func (s *paperService) ListByDate(ctx context.Context, day time.Time) ([]model.Paper, error) {
	from, to := DayWindow(day)
	return s.repo.ListBetween(ctx, from, to)
}

func (s *paperService) Get(ctx context.Context, id uint) (*model.Paper, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *paperService) Create(ctx context.Context, actor model.Actor, in PaperInput) (*model.Paper, error) {
	if !actor.Role.CanPublish() {
		return nil, errors.Forbidden("only journalists and admins can create papers")
	}
	paper, err := model.NewPaper(0, in.Date, in.NamePaper, in.NamePublisher)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, paper); err != nil {
		return nil, err
	}
	return paper, nil
}

func (s *paperService) Update(ctx context.Context, actor model.Actor, id uint, in PaperUpdate) (*model.Paper, error) {
	paper, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanPublish() {
		return nil, errors.Forbidden("only journalists and admins can edit papers")
	}
	if in.Date != nil {
		paper.Date = *in.Date
	}
	if in.NamePaper != nil {
		paper.NamePaper = *in.NamePaper
	}
	if in.NamePublisher != nil {
		paper.NamePublisher = *in.NamePublisher
	}
	if err := paper.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, paper); err != nil {
		return nil, err
	}
	invalidateAllArticles(ctx, s.cache)
	return paper, nil
}

// Delete removes an empty paper. Papers that still hold articles are kept.
func (s *paperService) Delete(ctx context.Context, actor model.Actor, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errors.Forbidden("only admins can delete papers")
	}
	n, err := s.repo.CountArticles(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.Conflict("paper still has articles")
	}
	return s.repo.Delete(ctx, id)
}

// EnsureEdition makes sure a paper exists for the UTC day containing day and
// reports whether one had to be created.
func (s *paperService) EnsureEdition(ctx context.Context, day time.Time, name, publisher string) (*model.Paper, bool, error) {
	from, to := DayWindow(day)
	existing, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return &existing[0], false, nil
	}
	paper, err := model.NewPaper(0, from, name, publisher)
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.Create(ctx, paper); err != nil {
		return nil, false, err
	}
	return paper, true, nil
}
