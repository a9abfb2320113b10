package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
	"github.com/JoTroup/woocommerce-default-ordering/internal/ordering"
	"github.com/JoTroup/woocommerce-default-ordering/internal/repositories"
)

type fakeSettings struct {
	cfg     ordering.Config
	err     error
	saved   []ordering.Config
	deleted int
}

func (f *fakeSettings) Load(context.Context) (ordering.Config, error) { return f.cfg, f.err }

func (f *fakeSettings) Save(_ context.Context, cfg ordering.Config) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, cfg)
	return nil
}

func (f *fakeSettings) Delete(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.deleted++
	return nil
}

type fakeStatuses struct {
	list []models.OrderStatus
	err  error
}

func (f fakeStatuses) List(context.Context) ([]models.OrderStatus, error) { return f.list, f.err }

type fakeOrders struct {
	calls  []repositories.ListParams
	orders []models.Order
	err    error
}

func (f *fakeOrders) List(_ context.Context, p repositories.ListParams) (repositories.ListResult, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return repositories.ListResult{}, f.err
	}
	start := (p.Page - 1) * p.PerPage
	if start > len(f.orders) {
		start = len(f.orders)
	}
	end := start + p.PerPage
	if end > len(f.orders) {
		end = len(f.orders)
	}
	return repositories.ListResult{Orders: f.orders[start:end], Total: len(f.orders)}, nil
}

var shopStatuses = []models.OrderStatus{
	{Code: "wc-pending"}, {Code: "wc-processing"}, {Code: "wc-completed"}, {Code: "wc-cancelled"}, {Code: "wc-refunded"},
}

func newListService(cfg ordering.Config) (OrderListService, *fakeOrders) {
	orders := &fakeOrders{orders: []models.Order{{ID: 1, Status: "wc-pending"}, {ID: 2, Status: "wc-completed"}}}
	return OrderListService{
		Settings: &fakeSettings{cfg: cfg},
		Statuses: fakeStatuses{list: shopStatuses},
		Orders:   orders,
	}, orders
}

var manager = domain.Viewer{UserID: 5, Roles: []string{"shop_manager"}}

func TestListAppliesCustomizationOnDefaultListing(t *testing.T) {
	svc, orders := newListService(ordering.Config{
		OrderField:       ordering.FieldDate,
		ExcludedStatuses: []string{"wc-cancelled", "wc-refunded"},
	})

	got, err := svc.List(context.Background(), manager, ListRequest{Status: "all"})
	require.NoError(t, err)

	require.Len(t, orders.calls, 1)
	assert.Equal(t, repositories.ListParams{
		OrderBy:   "date",
		Direction: ordering.Asc,
		Statuses:  []string{"wc-pending", "wc-processing", "wc-completed"},
		Page:      1,
		PerPage:   repositories.DefaultPerPage,
	}, orders.calls[0])
	assert.True(t, got.Override.Applied)
	assert.Equal(t, 2, got.Pagination.Total)
	assert.Equal(t, ordering.Asc, got.Order)
}

func TestListKeepsExplicitStatusFilter(t *testing.T) {
	svc, orders := newListService(ordering.Config{
		OrderField:       ordering.FieldTitle,
		ExcludedStatuses: []string{"wc-completed"},
	})

	got, err := svc.List(context.Background(), manager, ListRequest{Status: "wc-completed", Page: 2, PerPage: 5})
	require.NoError(t, err)

	require.Len(t, orders.calls, 1)
	p := orders.calls[0]
	assert.Equal(t, "date", p.OrderBy)
	assert.Equal(t, ordering.Desc, p.Direction)
	assert.Equal(t, []string{"wc-completed"}, p.Statuses)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.PerPage)
	assert.False(t, got.Override.Applied)
}

func TestListSkipsCustomizationForOtherRoles(t *testing.T) {
	svc, orders := newListService(ordering.Config{
		OrderField:       ordering.FieldTitle,
		ExcludedStatuses: []string{"wc-pending"},
		AppliedToRole:    "editor",
	})

	_, err := svc.List(context.Background(), manager, ListRequest{})
	require.NoError(t, err)

	p := orders.calls[0]
	assert.Equal(t, "date", p.OrderBy)
	assert.Equal(t, ordering.Desc, p.Direction)
	assert.Nil(t, p.Statuses)
}

func TestListCustomFieldWithoutStatusExclusions(t *testing.T) {
	svc, orders := newListService(ordering.Config{OrderField: ordering.FieldCustom})

	_, err := svc.List(context.Background(), manager, ListRequest{})
	require.NoError(t, err)

	p := orders.calls[0]
	assert.Equal(t, "ID", p.OrderBy)
	assert.Equal(t, ordering.Asc, p.Direction)
	assert.Nil(t, p.Statuses)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, orders := newListService(ordering.DefaultConfig())

	_, err := svc.List(context.Background(), manager, ListRequest{Status: "wc-archived"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, orders.calls)
}

func TestListRejectsOversizedPage(t *testing.T) {
	svc, _ := newListService(ordering.DefaultConfig())

	_, err := svc.List(context.Background(), manager, ListRequest{PerPage: 500})
	assert.True(t, domain.IsValidation(err))
}

func TestListSurfacesStorageErrorsAsInternal(t *testing.T) {
	svc, _ := newListService(ordering.DefaultConfig())
	svc.Settings = &fakeSettings{err: errors.New("db down")}

	_, err := svc.List(context.Background(), manager, ListRequest{})
	assert.True(t, domain.IsInternal(err))

	svc, orders := newListService(ordering.DefaultConfig())
	orders.err = errors.New("timeout")
	_, err = svc.List(context.Background(), manager, ListRequest{})
	assert.True(t, domain.IsInternal(err))
}

func TestListFallsBackOnCorruptSettings(t *testing.T) {
	svc, orders := newListService(ordering.Config{})
	svc.Settings = &fakeSettings{err: errors.Join(repositories.ErrCorruptSettings, errors.New("unexpected token"))}

	got, err := svc.List(context.Background(), manager, ListRequest{})
	require.NoError(t, err)

	require.Len(t, orders.calls, 1)
	assert.Equal(t, ordering.FieldDate, orders.calls[0].OrderBy)
	assert.Equal(t, ordering.Asc, orders.calls[0].Direction)
	assert.Nil(t, orders.calls[0].Statuses)
	assert.True(t, got.Override.Applied)
}

func TestExportPDF(t *testing.T) {
	svc, orders := newListService(ordering.Config{OrderField: ordering.FieldID, ExcludedStatuses: []string{"wc-cancelled"}})
	orders.orders = []models.Order{
		{ID: 1, Title: "Order #1", Status: "wc-pending", CustomerName: "Ana", Total: 123456, CreatedAt: time.Now()},
		{ID: 2, Title: strings.Repeat("Long title ", 10), Status: "wc-completed", Total: 99},
	}

	pdf, name, err := svc.ExportPDF(context.Background(), manager, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.True(t, strings.HasPrefix(name, "ORDERS_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	require.Len(t, orders.calls, 1)
	assert.Equal(t, repositories.MaxPerPage, orders.calls[0].PerPage)
	assert.Equal(t, "ID", orders.calls[0].OrderBy)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234.56", formatAmount(123456))
	assert.Equal(t, "0.99", formatAmount(99))
	assert.Equal(t, "-12.00", formatAmount(-1200))
	assert.Equal(t, "1,000,000.00", formatAmount(100000000))
}
