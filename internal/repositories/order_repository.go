package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "github.com/JoTroup/woocommerce-default-ordering/internal/config"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
	"github.com/JoTroup/woocommerce-default-ordering/internal/ordering"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListParams is the host-side query the order list is built from.
// A nil Statuses means no status clause; an empty non-nil slice matches nothing.
type ListParams struct {
	OrderBy   string
	Direction ordering.Direction
	Statuses  []string
	Page      int
	PerPage   int
}

type ListResult struct {
	Orders []models.Order
	Total  int
}

type OrderRepository struct {
	DB *sql.DB
}

func (r OrderRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

var sortColumns = map[string]string{
	ordering.FieldID:       "o.id",
	ordering.FieldDate:     "o.created_at",
	ordering.FieldModified: "o.updated_at",
	ordering.FieldTitle:    "o.title",
}

// sortExpr maps a field name to an ORDER BY expression. Names that are not
// built-in columns are sorted by the order meta value stored under that key.
func sortExpr(field string) (expr string, metaKey string) {
	if col, ok := sortColumns[field]; ok {
		return col, ""
	}
	return "m.meta_value", field
}

func normalizeDirection(d ordering.Direction) ordering.Direction {
	if strings.EqualFold(string(d), string(ordering.Desc)) {
		return ordering.Desc
	}
	return ordering.Asc
}

// List runs the paginated order list query.
func (r OrderRepository) List(ctx context.Context, p ListParams) (ListResult, error) {
	db := r.db()
	if db == nil {
		return ListResult{}, fmt.Errorf("list orders: database not connected")
	}
	if p.Statuses != nil && len(p.Statuses) == 0 {
		return ListResult{Orders: []models.Order{}}, nil
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	where := ""
	whereArgs := []any{}
	if len(p.Statuses) > 0 {
		where = " WHERE o.status IN (?" + strings.Repeat(",?", len(p.Statuses)-1) + ")"
		for _, st := range p.Statuses {
			whereArgs = append(whereArgs, st)
		}
	}

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o"+where, whereArgs...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("count orders: %w", err)
	}
	if total == 0 {
		return ListResult{Orders: []models.Order{}}, nil
	}

	field := p.OrderBy
	if field == "" {
		field = ordering.DefaultField
	}
	expr, metaKey := sortExpr(field)
	dir := normalizeDirection(p.Direction)

	args := []any{}
	from := " FROM orders o"
	if metaKey != "" {
		// one value per order even when the key repeats
		from += " LEFT JOIN (SELECT order_id, MIN(meta_value) AS meta_value FROM order_meta WHERE meta_key = ? GROUP BY order_id) m ON m.order_id = o.id"
		args = append(args, metaKey)
	}
	args = append(args, whereArgs...)

	orderClause := " ORDER BY " + expr + " " + string(dir)
	if expr != "o.id" {
		orderClause += ", o.id " + string(dir)
	}

	query := "SELECT o.id, COALESCE(o.title, ''), o.status, COALESCE(o.customer_name, ''), COALESCE(o.total, 0), o.created_at, o.updated_at" +
		from + where + orderClause + " LIMIT ? OFFSET ?"
	args = append(args, perPage, (page-1)*perPage)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return ListResult{}, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []models.Order{}
	for rows.Next() {
		var (
			o                models.Order
			created, updated sql.NullTime
		)
		if err := rows.Scan(&o.ID, &o.Title, &o.Status, &o.CustomerName, &o.Total, &created, &updated); err != nil {
			return ListResult{}, fmt.Errorf("scan order: %w", err)
		}
		o.CreatedAt = created.Time
		o.UpdatedAt = updated.Time
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, fmt.Errorf("list orders: %w", err)
	}

	return ListResult{Orders: out, Total: total}, nil
}
