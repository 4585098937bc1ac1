package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/repositories"
)

// CompanyService handles company signup and platform-level lookups. It is
// one of the trusted callers that runs unscoped: at signup time there is no
// company to bind yet.
type CompanyService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetBySlug(ctx context.Context, slug string) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]*models.Company, error)
	EnablePayments(ctx context.Context, id uuid.UUID, stripeAccountID string) error
}

type SignupRequest struct {
	Name string `json:"name"`
}

type companyService struct {
	repo repositories.CompanyRepository
}

func NewCompanyService(repo repositories.CompanyRepository) CompanyService {
	return &companyService{repo: repo}
}

func (s *companyService) Signup(ctx context.Context, req *SignupRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &models.ValidationError{Msg: "company name is required"}
	}

	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		ID:   uuid.New(),
		Name: name,
		Slug: slug,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *companyService) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *companyService) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *companyService) EnablePayments(ctx context.Context, id uuid.UUID, stripeAccountID string) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	company.StripeAccountID = &stripeAccountID
	company.PaymentsEnabled = true
	return s.repo.Update(ctx, company)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// uniqueSlug derives a URL slug from the company name, appending a numeric
// suffix until it is free.
func (s *companyService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "kennel"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
