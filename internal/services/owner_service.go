package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

type OwnerService interface {
	Create(ctx context.Context, owner *models.Owner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	Update(ctx context.Context, owner *models.Owner) error
	List(ctx context.Context, limit, offset int) ([]*models.Owner, error)
}

type ownerService struct {
	repo repositories.OwnerRepository
}

func NewOwnerService(repo repositories.OwnerRepository) OwnerService {
	return &ownerService{repo: repo}
}

func (s *ownerService) Create(ctx context.Context, owner *models.Owner) error {
	if strings.TrimSpace(owner.Name) == "" {
		return &models.ValidationError{Msg: "owner name is required"}
	}
	if !strings.Contains(owner.Email, "@") {
		return &models.ValidationError{Msg: "a valid email address is required"}
	}

	if owner.ID == uuid.Nil {
		owner.ID = uuid.New()
	}
	return s.repo.Create(ctx, owner)
}

func (s *ownerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Owner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ownerService) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *ownerService) Update(ctx context.Context, owner *models.Owner) error {
	if strings.TrimSpace(owner.Name) == "" {
		return &models.ValidationError{Msg: "owner name is required"}
	}
	return s.repo.Update(ctx, owner)
}

func (s *ownerService) List(ctx context.Context, limit, offset int) ([]*models.Owner, error) {
	return s.repo.List(ctx, limit, offset)
}
