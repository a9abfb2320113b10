package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	intdb "github.com/JoTroup/woocommerce-default-ordering/internal/db"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
)

const statusTable = "order_statuses"

// DefaultStatuses mirrors the stock shop statuses, used when the shop has
// no status table of its own.
func DefaultStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		{Code: "wc-pending", Label: "Pending payment"},
		{Code: "wc-processing", Label: "Processing"},
		{Code: "wc-on-hold", Label: "On hold"},
		{Code: "wc-completed", Label: "Completed"},
		{Code: "wc-cancelled", Label: "Cancelled"},
		{Code: "wc-refunded", Label: "Refunded"},
		{Code: "wc-failed", Label: "Failed"},
		{Code: "wc-checkout-draft", Label: "Draft"},
	}
}

type StatusRepository struct {
	DB *sql.DB
}

func (r StatusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns every known status in display order.
func (r StatusRepository) List(ctx context.Context) ([]models.OrderStatus, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(ctx, db, statusTable) {
		return DefaultStatuses(), nil
	}

	rows, err := db.QueryContext(ctx,
		"SELECT code, COALESCE(label, '') FROM "+statusTable+" ORDER BY position ASC, code ASC")
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	out := []models.OrderStatus{}
	for rows.Next() {
		var st models.OrderStatus
		if err := rows.Scan(&st.Code, &st.Label); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		st.Code = strings.TrimSpace(st.Code)
		if st.Code == "" {
			continue
		}
		if st.Label == "" {
			st.Label = st.Code
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	if len(out) == 0 {
		return DefaultStatuses(), nil
	}
	return out, nil
}

// StatusCodes extracts the codes of statuses preserving their order.
func StatusCodes(statuses []models.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, st.Code)
	}
	return out
}
