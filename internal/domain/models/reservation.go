package models

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"flexvry/internal/domain"
	"flexvry/internal/utils"
)

// Reservation status values. Transitions are free-form; only landing on
// collect/issue triggers a driver email.
const (
	StatusPending = "pending"
	StatusCollect = "collect"
	StatusIssue   = "issue"
)

// Reservation is one truck/trailer check-in event.
type Reservation struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	DriverLicense string    `json:"driverLicense"`
	Phone         string    `json:"phone"`
	TrailerNumber string    `json:"trailerNumber"`
	TruckNumber   string    `json:"truckNumber"`
	References    []string  `json:"references"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// phoneRe accepts digits with optional leading + and common separators.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCollect, StatusIssue:
		return true
	}
	return false
}

func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil && addr.Address == strings.TrimSpace(s)
}

func IsValidPhone(s string) bool {
	return phoneRe.MatchString(strings.TrimSpace(s))
}

// CleanReferences trims entries and drops blanks.
func CleanReferences(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ValidateNew checks all intake fields before anything is persisted.
func ValidateNew(r Reservation) error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "wajib diisi"}
	}
	if strings.TrimSpace(r.LastName) == "" {
		return domain.ValidationError{Field: "lastName", Msg: "wajib diisi"}
	}
	if !IsValidEmail(r.Email) {
		return domain.ValidationError{Field: "email", Msg: "format email tidak valid"}
	}
	if strings.TrimSpace(r.DriverLicense) == "" {
		return domain.ValidationError{Field: "driverLicense", Msg: "wajib diisi"}
	}
	if !IsValidPhone(r.Phone) {
		return domain.ValidationError{Field: "phone", Msg: "format nomor telepon tidak valid"}
	}
	if strings.TrimSpace(r.TrailerNumber) == "" {
		return domain.ValidationError{Field: "trailerNumber", Msg: "wajib diisi"}
	}
	if strings.TrimSpace(r.TruckNumber) == "" {
		return domain.ValidationError{Field: "truckNumber", Msg: "wajib diisi"}
	}
	if len(CleanReferences(r.References)) == 0 {
		return domain.ValidationError{Field: "references", Msg: "minimal satu reference"}
	}
	if _, err := utils.ParseDate(r.Date); err != nil {
		return domain.ValidationError{Field: "date", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	if strings.TrimSpace(r.Time) == "" {
		return domain.ValidationError{Field: "time", Msg: "wajib diisi"}
	}
	return nil
}
