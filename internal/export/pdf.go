package export

import (
	"bytes"
	"context"
	"fmt"

	"trip-planner-service/internal/domain"

	"github.com/phpdave11/gofpdf"
)

// LocalPDFRenderer lays out an itinerary as an A4 PDF in-process.
type LocalPDFRenderer struct{}

func NewLocalPDFRenderer() *LocalPDFRenderer { return &LocalPDFRenderer{} }

func (r *LocalPDFRenderer) RenderPDF(ctx context.Context, it domain.Itinerary) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v := domain.NewView(it)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; map UTF-8 input so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Trip to "+it.Destination, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr("Trip to "+it.Destination), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Duration: %d days", it.Duration), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Budget: $%s", v.BudgetTotal()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Activities: %d", v.TotalActivities()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if entries := v.CostEntries(); len(entries) > 0 {
		section(pdf, "Cost Breakdown")
		for _, e := range entries {
			pdf.CellFormat(80, 6, tr(domain.Title(e.Label)), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, "$"+e.Amount.String(), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	section(pdf, "Daily Itinerary")
	for _, d := range it.DailyItinerary {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Day %d: %s", d.Day, d.Title)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, a := range d.Activities {
			pdf.MultiCell(0, 5.5, tr(fmt.Sprintf("%s - %s: %s", a.Time, a.Activity, a.Description)), "", "L", false)
		}
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "Estimated Daily Cost: $"+d.EstimatedDailyCost.String(), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	if len(it.TravelTips) > 0 {
		section(pdf, "Travel Tips")
		for i, tip := range it.TravelTips {
			pdf.MultiCell(0, 5.5, tr(fmt.Sprintf("%d. %s", i+1, tip)), "", "L", false)
		}
	}
	if len(it.PackingList) > 0 {
		pdf.Ln(2)
		section(pdf, "Packing List")
		for _, item := range it.PackingList {
			pdf.MultiCell(0, 5.5, tr("- "+item), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.Ln(1)
}
