package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/prodcat/catalog/internal/service"
)

// Table geometry in points, A4 portrait.
const (
	pdfMargin    = 50.0
	rowHeight    = 20.0
	bottomMargin = 50.0
	headerBand   = 25.0

	colWidthID    = 60.0
	colWidthName  = 220.0
	colWidthPrice = 80.0
	colWidthStock = 80.0
)

var (
	colXID    = pdfMargin
	colXName  = colXID + colWidthID
	colXPrice = colXName + colWidthName
	colXStock = colXPrice + colWidthPrice

	tableWidth = colWidthID + colWidthName + colWidthPrice + colWidthStock
	tableRight = pdfMargin + tableWidth
)

// WritePDF renders the products as a titled, paginated report table and
// streams the document to w. Returns ErrNoProducts when there is nothing
// to export.
func WritePDF(w io.Writer, products []service.ProductDto) error {
	if len(products) == 0 {
		return ErrNoProducts
	}
	doc := buildPDF(products, time.Now())
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// buildPDF lays the table out page by page. Page breaks are driven by the
// next row plus the bottom margin exceeding the printable height; each new
// page repeats the header band, and only the final page gets the vertical
// column separators.
func buildPDF(products []service.ProductDto, generatedAt time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	drawHeader := func(y float64) {
		pdf.SetFillColor(74, 85, 104)
		pdf.Rect(pdfMargin, y-5, tableWidth, headerBand, "F")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(255, 255, 255)
		pdf.Text(colXID+5, y+13, "ID")
		pdf.Text(colXName+5, y+13, "Name")
		pdf.Text(colXPrice+5, y+13, "Price")
		pdf.Text(colXStock+5, y+13, "Stock")
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(1)
		pdf.Line(pdfMargin, y+headerBand-5, tableRight, y+headerBand-5)
	}
	drawFooter := func(page int) {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(113, 128, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", page), "", 0, "C", false, 0, "")
	}
	footerAt := func(page int) {
		pdf.SetXY(pdfMargin, pageHeight-bottomMargin)
		drawFooter(page)
	}

	// Title block
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 26, "Products Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Generated on "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(24)

	rowY := pdf.GetY()
	page := 1

	drawHeader(rowY)
	rowY += headerBand + 5

	for i, p := range products {
		if rowY+rowHeight+bottomMargin > pageHeight {
			footerAt(page)
			pdf.AddPage()
			page++
			rowY = pdfMargin
			drawHeader(rowY)
			rowY += headerBand + 5
		}

		if i%2 == 0 {
			pdf.SetFillColor(247, 250, 252)
			pdf.Rect(pdfMargin, rowY-3, tableWidth, rowHeight, "F")
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(colXID+5, rowY+10, fmt.Sprintf("%d", p.ID))
		pdf.Text(colXName+5, rowY+10, p.Name)
		pdf.Text(colXPrice+5, rowY+10, fmt.Sprintf("$%.2f", p.Price))
		pdf.Text(colXStock+5, rowY+10, fmt.Sprintf("%d", p.Stock))

		pdf.SetDrawColor(226, 232, 240)
		pdf.SetLineWidth(0.5)
		pdf.Line(pdfMargin, rowY+rowHeight-2, tableRight, rowY+rowHeight-2)

		rowY += rowHeight
	}

	// Vertical column separators span the table on the final page only.
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetLineWidth(0.5)
	for _, x := range []float64{colXID, colXName, colXPrice, colXStock, tableRight} {
		pdf.Line(x, pdfMargin, x, rowY)
	}

	footerAt(page)
	return pdf
}
