package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

func TestCompanyService_SignupSlugFromName(t *testing.T) {
	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)
	ctx := scope.Unscoped(context.Background())

	repo.On("SlugExists", mock.Anything, "happy-tails-kennels").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Company")).Return(nil)

	company, err := svc.Signup(ctx, &SignupRequest{Name: "  Happy Tails Kennels!  "})
	assert.NoError(t, err)
	assert.Equal(t, "Happy Tails Kennels!", company.Name)
	assert.Equal(t, "happy-tails-kennels", company.Slug)
}

func TestCompanyService_SignupSlugCollision(t *testing.T) {
	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)
	ctx := scope.Unscoped(context.Background())

	repo.On("SlugExists", mock.Anything, "barkside").Return(true, nil)
	repo.On("SlugExists", mock.Anything, "barkside-2").Return(true, nil)
	repo.On("SlugExists", mock.Anything, "barkside-3").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Company")).Return(nil)

	company, err := svc.Signup(ctx, &SignupRequest{Name: "Barkside"})
	assert.NoError(t, err)
	assert.Equal(t, "barkside-3", company.Slug)
}

func TestCompanyService_SignupEmptyName(t *testing.T) {
	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)

	_, err := svc.Signup(context.Background(), &SignupRequest{Name: "   "})

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCompanyService_EnablePayments(t *testing.T) {
	repo := new(MockCompanyRepository)
	svc := NewCompanyService(repo)
	ctx := scope.Unscoped(context.Background())

	company := &models.Company{Name: "Barkside", Slug: "barkside"}
	repo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	repo.On("Update", mock.Anything, company).Return(nil)

	err := svc.EnablePayments(ctx, company.ID, "acct_123")
	assert.NoError(t, err)
	assert.True(t, company.PaymentsEnabled)
	assert.Equal(t, "acct_123", *company.StripeAccountID)
}
