package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/northridge/backend/internal/model"
)

const (
	pdfMargin    = 18.0
	pdfLabelCol  = 120.0
	pdfAmountCol = 60.0
	pdfRowHeight = 8.0
)

// PDF renders est as a single-page Letter PDF.
func PDF(est *model.SavedEstimate) ([]byte, error) {
	r := &est.Result
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetTitle(title(r), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title(r)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	summary := []field{
		{"Estimated total", Money(r.Total)},
		{"Rate", PerUnit(r)},
		{"Location", fmt.Sprintf("%s (%s market, x%s)", r.LocationName, r.TierName, multiplier(r.LocationMultiplier))},
	}
	for _, f := range summary {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, tr(f.label+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(f.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Cost breakdown", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(245, 245, 244)
	pdf.CellFormat(pdfLabelCol, pdfRowHeight, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfAmountCol, pdfRowHeight, "Amount", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, li := range r.Breakdown {
		pdf.CellFormat(pdfLabelCol, pdfRowHeight, tr(li.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountCol, pdfRowHeight, Money(li.Value), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(pdfLabelCol, pdfRowHeight, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(pdfAmountCol, pdfRowHeight, Money(r.Total), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	if in := inputs(est); len(in) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, "Your selections", "", 1, "L", false, 0, "")
		for _, f := range in {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(45, 6, tr(f.label+":"), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 6, tr(f.value), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(87, 83, 78)
	if est.ID != "" {
		pdf.CellFormat(0, 5, "Reference: "+est.ID, "", 1, "L", false, 0, "")
	}
	pdf.MultiCell(0, 5, tr(Disclaimer), "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("report: pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
