package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	"github.com/chinmayajanata/backend/internal/domain/identity"
	"github.com/chinmayajanata/backend/internal/domain/rank"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
)

// CenterService manages centers. Creation and removal are admin-gated;
// ids come from the allocator so two concurrent creates can never share one.
type CenterService struct {
	Repo      repo.CenterRepository
	Authority *Authority
	Allocator *identity.Allocator
	Logger    *logrus.Logger
}

// Create allocates a fresh center id and persists the center. The id is set
// on the returned value only after the row is durably created.
func (s *CenterService) Create(ctx context.Context, caller CallerContext, name string, loc entity.Location) (*entity.Center, error) {
	if err := s.Authority.Authorize(caller); err != nil {
		return nil, err
	}
	c := entity.NewCenter(loc, name)
	id, err := s.Allocator.Allocate(ctx, rank.CenterIDSpace, func(ctx context.Context, candidate int64) error {
		probe := *c
		probe.CenterID = candidate
		return s.Repo.Create(ctx, &probe)
	})
	if err != nil {
		return nil, err
	}
	c.CenterID = id
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"center_id": id, "name": name}).Info("center created")
	}
	return c, nil
}

// Get fetches a center by id.
func (s *CenterService) Get(ctx context.Context, centerID int64) (*entity.Center, error) {
	c, err := s.Repo.GetByCenterID(ctx, centerID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCenterNotFound
	}
	return c, err
}

// List returns all known centers.
func (s *CenterService) List(ctx context.Context) ([]*entity.Center, error) {
	return s.Repo.List(ctx)
}

// Verify marks a center verified. Admin only.
func (s *CenterService) Verify(ctx context.Context, caller CallerContext, centerID int64) error {
	return s.Authority.VerifyCenter(ctx, caller, centerID)
}

// UpdateDetails rewrites a center's name and location.
func (s *CenterService) UpdateDetails(ctx context.Context, centerID int64, name string, loc entity.Location) (*entity.Center, error) {
	c, err := s.Repo.GetByCenterID(ctx, centerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}
	if name != "" {
		c.Name = name
	}
	c.Location = loc
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes a center. Admin only. Members keep their affiliation field
// until they join another center.
func (s *CenterService) Remove(ctx context.Context, caller CallerContext, centerID int64) error {
	if err := s.Authority.Authorize(caller); err != nil {
		return err
	}
	err := s.Repo.Delete(ctx, centerID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCenterNotFound
	}
	if err == nil && s.Logger != nil {
		s.Logger.WithField("center_id", centerID).Info("center removed")
	}
	return err
}
