// Package report renders a human-readable PDF summary of a single RAP
// rejection, plus a QR code a field technician can scan to pull up the
// same rejection by correlation ID.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"example.com/tapgate/internal/rap"
)

// RejectionReport is everything a rejection PDF needs to describe one
// emitted RAP file.
type RejectionReport struct {
	Filename           string
	CorrelationID      string
	Sender             string
	Recipient          string
	FileSequenceNumber string
	ErrorCode          int
	ErrorContext       []rap.ErrorContext
	EmittedAt          time.Time
}

// SaveRejectionPDF renders rep into a PDF document at out.
func SaveRejectionPDF(rep RejectionReport, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TAP Rejection Report", false)
	pdf.SetAuthor("tapvalidatorctl", false)
	pdf.SetCreator("tapvalidatorctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "TAP Rejection Report")
	addSummarySection(pdf, rep)
	addErrorContextSection(pdf, rep.ErrorContext)

	if png, err := RejectionQRCode(rep, 96); err == nil {
		drawQRCode(pdf, png)
	}

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addSummarySection(pdf *gofpdf.Fpdf, rep RejectionReport) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	items := []struct{ label, value string }{
		{"Filename", rep.Filename},
		{"Correlation ID", rep.CorrelationID},
		{"Sender", rep.Sender},
		{"Recipient", rep.Recipient},
		{"File Sequence Number", rep.FileSequenceNumber},
		{"Error Code", strconv.Itoa(rep.ErrorCode)},
		{"Emitted At", rep.EmittedAt.Format(time.RFC3339)},
	}
	for _, item := range items {
		pdf.CellFormat(55, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, emptyFallback(item.value, "-"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addErrorContextSection(pdf *gofpdf.Fpdf, ctx []rap.ErrorContext) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Error Context")
	pdf.Ln(9)

	headers := []string{"Level", "Path Item ID"}
	widths := []float64{30, 60}
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range ctx {
		pdf.CellFormat(widths[0], 6, strconv.Itoa(c.ItemLevel), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, strconv.FormatUint(c.PathItemID, 10), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func drawQRCode(pdf *gofpdf.Fpdf, png []byte) {
	reader := newByteReader(png)
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("rejection-qr", opts, reader)
	if pdf.Err() {
		return
	}
	pdf.Image("rejection-qr", 15, pdf.GetY()+4, 30, 30, false, "", 0, "")
}

func emptyFallback(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
