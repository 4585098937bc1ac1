package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/jamesruscoe/dog-kennel/internal/scope"
)

type TxRunnerTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	runner    TxRunner
	companyID uuid.UUID
	ctx       context.Context
}

func (suite *TxRunnerTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.runner = NewTxRunner(mock)
	suite.companyID = uuid.New()
	suite.ctx = scope.Bind(context.Background(), suite.companyID)
}

func (suite *TxRunnerTestSuite) TearDownTest() {
	suite.mock.Close()
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestTxRunnerTestSuite(t *testing.T) {
	suite.Run(t, new(TxRunnerTestSuite))
}

// The company lock must be the first statement on the transaction, before
// any work the caller does. Two requests for the same company then serialise
// on the lock, so a capacity check and the write it guards cannot interleave
// with another request's pair.
func (suite *TxRunnerTestSuite) TestInTx_LocksCompanyBeforeWork() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1::text, 0\)\)`).
		WithArgs(suite.companyID.String()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	suite.mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	var got pgx.Tx
	err := suite.runner.InTx(suite.ctx, func(tx pgx.Tx) error {
		got = tx
		_, err := tx.Exec(suite.ctx, `UPDATE bookings SET status = 'approved'`)
		return err
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
}

func (suite *TxRunnerTestSuite) TestInTx_UnboundContext() {
	called := false
	err := suite.runner.InTx(context.Background(), func(pgx.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(suite.T(), err, scope.ErrNoCompany)
	assert.False(suite.T(), called, "no transaction should run without a scope")
}

func (suite *TxRunnerTestSuite) TestInTx_UnscopedSkipsLock() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectCommit()

	err := suite.runner.InTx(scope.Unscoped(context.Background()), func(pgx.Tx) error {
		return nil
	})
	assert.NoError(suite.T(), err)
}

func (suite *TxRunnerTestSuite) TestInTx_FnErrorRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(suite.companyID.String()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	suite.mock.ExpectRollback()

	boom := errors.New("capacity check failed")
	err := suite.runner.InTx(suite.ctx, func(pgx.Tx) error {
		return boom
	})
	assert.ErrorIs(suite.T(), err, boom)
}

func (suite *TxRunnerTestSuite) TestInTx_LockFailureAbortsBeforeWork() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(suite.companyID.String()).
		WillReturnError(errors.New("connection lost"))
	suite.mock.ExpectRollback()

	called := false
	err := suite.runner.InTx(suite.ctx, func(pgx.Tx) error {
		called = true
		return nil
	})

	assert.Error(suite.T(), err)
	assert.False(suite.T(), called, "work must not run without the lock")
}
