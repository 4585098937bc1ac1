package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

type DogService interface {
	Create(ctx context.Context, dog *models.Dog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dog, error)
	Update(ctx context.Context, dog *models.Dog) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.Dog, error)

	// OwnedBy reports whether the dog belongs to the given owner. The
	// booking handlers use it to let customers act on their own bookings.
	OwnedBy(ctx context.Context, dogID, ownerID uuid.UUID) (bool, error)
}

type dogService struct {
	dogs   repositories.DogRepository
	owners repositories.OwnerRepository
}

func NewDogService(dogs repositories.DogRepository, owners repositories.OwnerRepository) DogService {
	return &dogService{dogs: dogs, owners: owners}
}

func (s *dogService) Create(ctx context.Context, dog *models.Dog) error {
	if strings.TrimSpace(dog.Name) == "" {
		return &models.ValidationError{Msg: "dog name is required"}
	}

	// Owner lookup runs scoped, so it also proves the owner belongs to the
	// bound company.
	if _, err := s.owners.GetByID(ctx, dog.OwnerID); err != nil {
		return err
	}

	if dog.ID == uuid.Nil {
		dog.ID = uuid.New()
	}
	return s.dogs.Create(ctx, dog)
}

func (s *dogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	return s.dogs.GetByID(ctx, id)
}

func (s *dogService) Update(ctx context.Context, dog *models.Dog) error {
	if strings.TrimSpace(dog.Name) == "" {
		return &models.ValidationError{Msg: "dog name is required"}
	}
	return s.dogs.Update(ctx, dog)
}

func (s *dogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.dogs.SoftDelete(ctx, id)
}

func (s *dogService) List(ctx context.Context, ownerID *uuid.UUID, limit, offset int) ([]*models.Dog, error) {
	return s.dogs.List(ctx, ownerID, limit, offset)
}

func (s *dogService) OwnedBy(ctx context.Context, dogID, ownerID uuid.UUID) (bool, error) {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		if errors.Is(err, models.ErrDogNotFound) {
			return false, nil
		}
		return false, err
	}
	return dog.OwnerID == ownerID, nil
}
