package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/Vileyy/admin-halora-app/internal/analytics"
	"github.com/Vileyy/admin-halora-app/internal/model"
)

const (
	ReportFormatXLSX = "xlsx"
	ReportFormatPDF  = "pdf"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Report is a rendered export ready to be sent as an attachment.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ReportService interface {
	ExportRevenue(ctx context.Context, month, year int, format string) (*Report, error)
}

type reportService struct {
	revenue RevenueService
}

func NewReportService(revenue RevenueService) ReportService {
	return &reportService{revenue: revenue}
}

type revenueReport struct {
	period   model.Period
	stats    model.RevenueStats
	daily    []model.DailyRevenue
	products []model.ProductStats
}

func (s *reportService) ExportRevenue(ctx context.Context, month, year int, format string) (*Report, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = ReportFormatXLSX
	}
	if format != ReportFormatXLSX && format != ReportFormatPDF {
		return nil, invalid("unsupported report format %q", format)
	}

	daily, err := s.revenue.GetDailyRevenue(ctx, month, year)
	if err != nil {
		return nil, err
	}
	records, err := s.revenue.ListRecords(ctx, analytics.RevenueFilter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}

	data := revenueReport{
		period:   model.Period{Year: year, Month: month},
		stats:    analytics.CalculateStats(records),
		daily:    daily,
		products: analytics.CalculateProductStats(records),
	}
	name := fmt.Sprintf("revenue_report_%s.%s", data.period, format)

	var buf bytes.Buffer
	if format == ReportFormatPDF {
		if err := writeRevenuePDF(&buf, data); err != nil {
			return nil, err
		}
		return &Report{Filename: name, ContentType: contentTypePDF, Body: buf.Bytes()}, nil
	}

	if err := writeRevenueXLSX(&buf, data); err != nil {
		return nil, err
	}
	return &Report{Filename: name, ContentType: contentTypeXLSX, Body: buf.Bytes()}, nil
}

func boldStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	return style
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		cell := row.AddCell()
		cell.SetString(h)
		cell.SetStyle(boldStyle())
	}
}

func writeRevenueXLSX(buf *bytes.Buffer, data revenueReport) error {
	file := xlsx.NewFile()

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	title := summary.AddRow().AddCell()
	title.SetString("HALORA - Revenue Report " + data.period.String())
	title.SetStyle(boldStyle())
	summary.AddRow()
	addHeaderRow(summary, "Metric", "Value")
	for _, m := range []struct {
		label string
		value int64
	}{
		{"Total Revenue", data.stats.TotalRevenue},
		{"Total Orders", int64(data.stats.TotalOrders)},
		{"Products Sold", int64(data.stats.TotalProductsSold)},
	} {
		row := summary.AddRow()
		row.AddCell().SetString(m.label)
		row.AddCell().SetInt(int(m.value))
	}

	daily, err := file.AddSheet("Daily")
	if err != nil {
		return fmt.Errorf("create daily sheet: %w", err)
	}
	addHeaderRow(daily, "Day", "Revenue", "Orders")
	for _, d := range data.daily {
		row := daily.AddRow()
		row.AddCell().SetInt(d.Day)
		row.AddCell().SetInt(int(d.Revenue))
		row.AddCell().SetInt(d.Orders)
	}

	products, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("create products sheet: %w", err)
	}
	addHeaderRow(products, "Product", "Category", "Quantity", "Orders", "Revenue")
	for _, p := range data.products {
		row := products.AddRow()
		row.AddCell().SetString(p.ProductName)
		row.AddCell().SetString(p.ProductCategory)
		row.AddCell().SetInt(p.TotalQuantity)
		row.AddCell().SetInt(p.TotalOrders)
		row.AddCell().SetInt(int(p.TotalRevenue))
	}

	if err := file.Write(buf); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRevenuePDF(buf *bytes.Buffer, data revenueReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "HALORA - Revenue Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+data.period.String())
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(90, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, m := range [][2]string{
		{"Total Revenue", formatVND(data.stats.TotalRevenue)},
		{"Total Orders", fmt.Sprintf("%d", data.stats.TotalOrders)},
		{"Products Sold", fmt.Sprintf("%d", data.stats.TotalProductsSold)},
	} {
		pdf.CellFormat(50, 8, m[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, m[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	headers := []string{"Product", "Category", "Qty", "Orders", "Revenue"}
	widths := []float64{70, 40, 20, 20, 40}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, p := range data.products {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(widths[0], 8, tr(analytics.ShortenLabel(p.ProductName, 32)), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 8, tr(p.ProductCategory), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", p.TotalQuantity), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", p.TotalOrders), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[4], 8, formatVND(p.TotalRevenue), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(buf); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// formatVND groups thousands with dots, e.g. 1250000 -> "1.250.000 VND".
func formatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " VND"
}
