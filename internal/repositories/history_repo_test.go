package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HistoryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    HistoryRepository
	context context.Context
}

func (suite *HistoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewHistoryRepo(mock)
	suite.context = context.Background()
}

func (suite *HistoryRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestHistoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryRepoTestSuite))
}

func (suite *HistoryRepoTestSuite) TestInsertSnapshot() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO order_detail_history`).
		WithArgs(pgxmock.AnyArg(), int64(9), int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := suite.mock.Begin(suite.context)
	assert.NoError(suite.T(), err)

	err = suite.repo.InsertSnapshot(suite.context, tx, 42, 9)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *HistoryRepoTestSuite) TestInsertSnapshot_MissingDetailIsError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO order_detail_history`).
		WithArgs(pgxmock.AnyArg(), int64(9), int64(404)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	tx, err := suite.mock.Begin(suite.context)
	assert.NoError(suite.T(), err)

	err = suite.repo.InsertSnapshot(suite.context, tx, 404, 9)
	assert.Error(suite.T(), err)
}

func (suite *HistoryRepoTestSuite) TestListByDetailNumber() {
	first := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 21, 14, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`WHERE d\.detail_order_number = \$1`).
		WithArgs("ORD-1-1").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at", "order_status_type"}).
			AddRow(first, "PAYMENT_COMPLETE").
			AddRow(second, "PREPARING"))

	rows, err := suite.repo.ListByDetailNumber(suite.context, "ORD-1-1")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "PAYMENT_COMPLETE", rows[0].StatusName)
	assert.True(suite.T(), rows[0].UpdatedAt.Before(rows[1].UpdatedAt))
}

func (suite *HistoryRepoTestSuite) TestListByDateRange() {
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	recordID := uuid.New()

	suite.mock.ExpectQuery(`WHERE updated_at >= \$1 AND updated_at < \$2`).
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "order_detail_id", "order_status_type_id", "address_id", "modify_account_id", "price", "updated_at",
		}).AddRow(recordID, int64(42), int64(2), int64(11), int64(9), int64(19900), start.Add(10*time.Hour)))

	rows, err := suite.repo.ListByDateRange(suite.context, start, end)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), recordID, rows[0].ID)
	assert.Equal(suite.T(), int64(42), rows[0].OrderDetailID)
}
