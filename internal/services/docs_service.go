package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"flexvry/internal/domain/models"
	"flexvry/internal/repositories"
	"flexvry/internal/utils"
)

// DocsService menghasilkan slip PDF per reservasi untuk dicetak di loket.
type DocsService struct {
	Repo      repositories.ReservationRepository
	RequestID string
	Loader    func(id string) (models.Reservation, error)
}

func (s DocsService) load(id string) (models.Reservation, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	return s.Repo.GetByID(id)
}

// GenerateSlip renders the reservation detail as an A4 PDF and returns the
// bytes plus a download filename.
func (s DocsService) GenerateSlip(id string) ([]byte, string, error) {
	res, err := s.load(id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_slip", "reservation_id="+res.ID)
	return buildSlipPDF(res)
}

func buildSlipPDF(r models.Reservation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reservation Slip", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRUCK RESERVATION SLIP")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Driver          : %s %s", safe(r.Name, "-"), safe(r.LastName, "")),
		fmt.Sprintf("Email           : %s", safe(r.Email, "-")),
		fmt.Sprintf("Phone           : %s", safe(r.Phone, "-")),
		fmt.Sprintf("Driver License  : %s", safe(r.DriverLicense, "-")),
		fmt.Sprintf("Truck Number    : %s", safe(r.TruckNumber, "-")),
		fmt.Sprintf("Trailer Number  : %s", safe(r.TrailerNumber, "-")),
		fmt.Sprintf("References      : %s", safe(strings.Join(r.References, ", "), "-")),
		fmt.Sprintf("Date / Time     : %s %s", safe(r.Date, "-"), safe(r.Time, "-")),
		fmt.Sprintf("Status          : %s", safe(strings.ToUpper(r.Status), "-")),
		fmt.Sprintf("Reservation ID  : %s", safe(r.ID, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please keep this slip until your paperwork has been collected.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reservation-%s.pdf", safeFilenamePart(r.ID))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}
