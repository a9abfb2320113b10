package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
	"github.com/JoTroup/woocommerce-default-ordering/internal/repositories"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

// maxExportRows bounds a single PDF export.
const maxExportRows = 2000

// ExportPDF renders the whole customized order list (up to maxExportRows) as a PDF.
func (s OrderListService) ExportPDF(ctx context.Context, viewer domain.Viewer, statusParam string) ([]byte, string, error) {
	params, _, err := s.Plan(ctx, viewer, statusParam)
	if err != nil {
		return nil, "", err
	}

	params.PerPage = repositories.MaxPerPage
	orders := []models.Order{}
	total := 0
	for page := 1; len(orders) < maxExportRows; page++ {
		params.Page = page
		res, err := s.Orders.List(ctx, params)
		if err != nil {
			return nil, "", domain.InternalError{Msg: "failed to list orders", Err: err}
		}
		total = res.Total
		orders = append(orders, res.Orders...)
		if len(res.Orders) < params.PerPage || len(orders) >= total {
			break
		}
	}
	if len(orders) > maxExportRows {
		orders = orders[:maxExportRows]
	}

	utils.LogEvent(s.Logger, s.RequestID, "orders", "export_pdf", "order list exported",
		zap.Int("rows", len(orders)), zap.Int("total", total))

	now := time.Now()
	header := fmt.Sprintf("Sorted by %s %s", safe(params.OrderBy, "-"), params.Direction)
	if params.Statuses != nil {
		header += " | statuses: " + safe(strings.Join(params.Statuses, ", "), "none")
	}
	return buildOrderListPDF(orders, total, header, now)
}

func buildOrderListPDF(orders []models.Order, total int, header string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Order list", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "ORDER LIST")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, header)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d of %d orders", utils.FormatDateTime(now), len(orders), total))
	pdf.Ln(9)

	widths := []float64{20, 80, 35, 60, 30, 45}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"ID", "Title", "Status", "Customer", "Total", "Created"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, o := range orders {
		cells := []string{
			fmt.Sprintf("#%d", o.ID),
			truncate(safe(utils.NormalizeSpace(o.Title), "-"), 48),
			safe(o.Status, "-"),
			truncate(safe(o.CustomerName, "-"), 36),
			formatAmount(o.Total),
			safe(utils.FormatDateTime(o.CreatedAt), "-"),
		}
		for i, c := range cells {
			align := "L"
			if i == 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ORDERS_%s.pdf", safeFilenamePart(now.Format("20060102_150405")))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// formatAmount renders an amount stored in cents with thousands separators.
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := fmt.Sprintf("%d", cents/100)
	var out []byte
	n := len(whole)
	for i := 0; i < n; i++ {
		out = append(out, whole[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, ',')
		}
	}
	return fmt.Sprintf("%s%s.%02d", sign, string(out), cents%100)
}
