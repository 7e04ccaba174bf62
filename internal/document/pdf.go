package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// A4 layout in millimeters.
const (
	pdfMargin     = 15.0
	pdfLineHeight = 6.0
	pdfLabelWidth = 70.0
)

// WritePDF writes doc as an A4 PDF. Content past the bottom margin continues
// on a new page, and each page carries a "page x/y" footer.
func WritePDF(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+5)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Company, true)
	pdf.AliasNbPages("")

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d/{nb}", tr(doc.Title), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pdfMargin

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(contentWidth/2, 10, tr(doc.Title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(contentWidth/2, 10, tr(doc.Company), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(contentWidth, pdfLineHeight, tr(strings.TrimSpace(doc.Customer+"  "+doc.Date)), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, s := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(55, 65, 81)
		pdf.CellFormat(contentWidth, 8, tr(strings.ToUpper(s.Title)), "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, r := range s.Rows {
			pdf.SetTextColor(107, 114, 128)
			pdf.CellFormat(pdfLabelWidth, pdfLineHeight, tr(r.Label), "", 0, "L", false, 0, "")
			pdf.SetTextColor(31, 41, 55)
			value := r.Value
			if value == "" {
				value = "-"
			}
			pdf.MultiCell(contentWidth-pdfLabelWidth, pdfLineHeight, tr(value), "", "L", false)
		}
		pdf.Ln(3)
	}

	if strings.TrimSpace(doc.Notes) != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(55, 65, 81)
		pdf.CellFormat(contentWidth, 8, "NOTES", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(31, 41, 55)
		pdf.MultiCell(contentWidth, pdfLineHeight, tr(doc.Notes), "", "L", false)
	}

	if doc.Kind == KindCertificate {
		pdf.Ln(20)
		y := pdf.GetY()
		half := contentWidth/2 - 10
		pdf.Line(pdfMargin, y, pdfMargin+half, y)
		pdf.Line(pageWidth-pdfMargin-half, y, pageWidth-pdfMargin, y)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(half, pdfLineHeight, "Operator", "", 0, "C", false, 0, "")
		pdf.SetX(pageWidth - pdfMargin - half)
		pdf.CellFormat(half, pdfLineHeight, "Customer", "", 1, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
