package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
)

func TestStatusListFallsBackWithoutTable(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("information_schema\\.tables").WithArgs("order_statuses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	got, err := StatusRepository{DB: db}.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultStatuses(), got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusListReadsTable(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("information_schema\\.tables").WithArgs("order_statuses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("order_statuses"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, COALESCE(label, '') FROM order_statuses ORDER BY position ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"code", "label"}).
			AddRow("pending", "Pending").
			AddRow(" ", "Blank").
			AddRow("shipped", ""))

	got, err := StatusRepository{DB: db}.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.OrderStatus{
		{Code: "pending", Label: "Pending"},
		{Code: "shipped", Label: "shipped"},
	}, got)
	assert.Equal(t, []string{"pending", "shipped"}, StatusCodes(got))
	require.NoError(t, mock.ExpectationsWereMet())
}
