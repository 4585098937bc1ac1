package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/jamesruscoe/dog-kennel/internal/models"
	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

type SettingsRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      KennelSettingsRepository
	companyID uuid.UUID
	ctx       context.Context
}

func (suite *SettingsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewKennelSettingsRepo(mock)
	suite.companyID = uuid.New()
	suite.ctx = scope.Bind(context.Background(), suite.companyID)
}

func (suite *SettingsRepoTestSuite) TearDownTest() {
	suite.mock.Close()
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestSettingsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsRepoTestSuite))
}

func (suite *SettingsRepoTestSuite) testSettings() *models.KennelSettings {
	return &models.KennelSettings{
		ID:               uuid.New(),
		MaxCapacity:      10,
		NightlyRatePence: 2500,
		OperatingDays:    []int{1, 2, 3, 4, 5},
		CheckInTime:      "09:00",
		CheckOutTime:     "17:00",
	}
}

func (suite *SettingsRepoTestSuite) TestCreate_DuplicateIsStateError() {
	settings := suite.testSettings()

	suite.mock.ExpectExec(`INSERT INTO kennel_settings`).
		WithArgs(settings.ID, suite.companyID, settings.MaxCapacity,
			settings.NightlyRatePence, settings.OperatingDays, settings.CheckInTime,
			settings.CheckOutTime, settings.BookingLeadDays).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.repo.Create(suite.ctx, settings)

	var stateErr *models.StateError
	assert.ErrorAs(suite.T(), err, &stateErr)
}

func (suite *SettingsRepoTestSuite) TestGetForCompany() {
	settings := suite.testSettings()
	settings.CompanyID = suite.companyID

	suite.mock.ExpectQuery(`FROM kennel_settings WHERE 1=1 AND company_id = \$1`).
		WithArgs(suite.companyID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "company_id", "max_capacity", "nightly_rate_pence", "operating_days",
			"check_in_time", "check_out_time", "booking_lead_days", "created_at", "updated_at",
		}).AddRow(settings.ID, settings.CompanyID, settings.MaxCapacity,
			settings.NightlyRatePence, settings.OperatingDays, settings.CheckInTime,
			settings.CheckOutTime, settings.BookingLeadDays, time.Now(), time.Now()))

	got, err := suite.repo.GetForCompany(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, got.MaxCapacity)
	assert.Equal(suite.T(), []int{1, 2, 3, 4, 5}, got.OperatingDays)
}

func (suite *SettingsRepoTestSuite) TestGetForCompany_NotConfigured() {
	suite.mock.ExpectQuery(`FROM kennel_settings`).
		WithArgs(suite.companyID).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err := suite.repo.GetForCompany(suite.ctx)
	assert.ErrorIs(suite.T(), err, models.ErrSettingsNotFound)
}

func (suite *SettingsRepoTestSuite) TestGetForCompany_UnboundContext() {
	_, err := suite.repo.GetForCompany(context.Background())
	assert.ErrorIs(suite.T(), err, scope.ErrNoCompany)
}

// Unscoped contexts are for cross-company reads; a singleton lookup with no
// company would return whichever row the database picked.
func (suite *SettingsRepoTestSuite) TestGetForCompany_UnscopedIsRefused() {
	_, err := suite.repo.GetForCompany(scope.Unscoped(context.Background()))
	assert.ErrorIs(suite.T(), err, scope.ErrNoCompany)
}
