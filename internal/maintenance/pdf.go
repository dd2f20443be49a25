package maintenance

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-pdf/fpdf"
)

// ExportPDF renders a single-record report: title, two-column info
// table, the optional readings/recommended-action/notes sections when
// non-empty, and a generation-timestamp footer.
func (s *Service) ExportPDF(ctx context.Context, id uint) ([]byte, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, "Maintenance Record Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	addInfoRow(pdf, "Record ID", fmt.Sprintf("%d", rec.ID))
	addInfoRow(pdf, "Transformer Number", rec.Transformer.Number)
	addInfoRow(pdf, "Location", orNA(rec.Location))
	addInfoRow(pdf, "Engineer Name", orNA(rec.EngineerName))
	addInfoRow(pdf, "Status", orNA(rec.Status))
	addInfoRow(pdf, "Record Timestamp", rec.RecordTimestamp)
	pdf.Ln(8)

	addSection(pdf, "Electrical Readings", rec.Readings)
	addSection(pdf, "Recommended Action", rec.RecommendedAction)
	addSection(pdf, "Notes", rec.Notes)

	// Footer
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(128, 128, 128)
	generated := "Generated on: " + time.Now().Format("2006-01-02 15:04:05")
	pdf.CellFormat(0, 8, generated, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate PDF for maintenance record %d: %w", id, err)
	}

	log.Printf("[info] operation=export_maintenance_pdf id=%d bytes=%d", id, buf.Len())
	return buf.Bytes(), nil
}

func addInfoRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(60, 10, label, "1", 0, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 10, value, "1", 1, "L", false, 0, "")
}

func addSection(pdf *fpdf.Fpdf, title, body string) {
	if body == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, body, "", "L", false)
	pdf.Ln(6)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
