// Package ticket renders admission tickets for confirmed reservations.
package ticket

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"evenza/internal/ports/output"
	"evenza/pkg/tz"
)

var _ output.TicketRenderer = (*PDFRenderer)(nil)

const brand = "Evenza"

// PDFRenderer lays out a one-page A4 ticket. Labels go through the
// translator so the ticket follows the requester's locale.
type PDFRenderer struct {
	tr output.T
}

func NewPDFRenderer(tr output.T) *PDFRenderer {
	return &PDFRenderer{tr: tr}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(ctx context.Context, t output.Ticket) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label := func(key string) string { return r.tr.T(t.Locale, key, nil) }

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(brand+" "+t.Event.Title, true)
	pdf.SetCreator(brand, true)
	pdf.SetCreationDate(t.Reservation.UpdatedAt)
	pdf.SetModificationDate(t.Reservation.UpdatedAt)
	pdf.SetCatalogSort(true)
	// Core fonts are cp1252; accents in titles and labels need translating.
	enc := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, brand, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, enc(strings.ToUpper(label("ticket_title"))), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	section := func(title string) {
		pdf.SetFont("Helvetica", "BU", 15)
		pdf.CellFormat(0, 9, enc(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
	}
	line := func(key, value string) {
		pdf.MultiCell(0, 7, enc(fmt.Sprintf("%s : %s", label(key), value)), "", "L", false)
	}

	section(label("ticket_event"))
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, enc(t.Event.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 12)
	if t.Event.Description != "" {
		pdf.MultiCell(0, 6, enc(t.Event.Description), "", "L", false)
	}
	line("ticket_date", tz.Display(t.Event.Date))
	line("ticket_location", t.Event.Location)
	pdf.Ln(6)

	section(label("ticket_participant"))
	line("ticket_participant", t.Participant.DisplayName())
	line("ticket_status", label("status_"+string(t.Reservation.Status)))
	line("ticket_booked_on", tz.Display(t.Reservation.CreatedAt))
	pdf.Ln(8)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(0, 12, enc(fmt.Sprintf("%s : %s", label("ticket_code"), t.Reservation.ID)), "1", 1, "C", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, enc(label("ticket_footer")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
