package services

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"strings"

	"flexvry/internal/domain"
	"flexvry/internal/domain/models"
	"flexvry/internal/mail"
	"flexvry/internal/repositories"
	"flexvry/internal/utils"
)

// ReservationService owns validation, the status workflow and the decision of
// when to notify. Email dispatch is detached from the request path.
type ReservationService struct {
	Repo         repositories.ReservationRepository
	Mail         mail.MailService
	AdminEmail   string
	DefaultLimit int
	RequestID    string
}

func (s ReservationService) defaultLimit() int {
	if s.DefaultLimit > 0 {
		return s.DefaultLimit
	}
	return 10
}

// spawn runs fn detached from the caller. A panic in the background path must
// never take down the request-handling process.
func (s ReservationService) spawn(action string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[RESERVATION] panic pada background task action=%s: %v", action, r)
			}
		}()
		fn()
	}()
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError{Resource: "reservation", Err: err}
	case domain.IsValidation(err) || domain.IsNotFound(err):
		return err
	default:
		return domain.InternalError{Msg: "kesalahan penyimpanan", Err: err}
	}
}

// Create validates the intake, persists it and schedules the confirmation and
// admin emails. The emails are fire-and-forget: the reservation is returned as
// soon as the row is written.
func (s ReservationService) Create(input models.Reservation) (models.Reservation, error) {
	if err := models.ValidateNew(input); err != nil {
		return models.Reservation{}, err
	}

	// canonical YYYY-MM-DD; ValidateNew already guaranteed it parses
	if d, err := utils.ParseDate(input.Date); err == nil {
		input.Date = utils.FormatDate(d)
	}

	created, err := s.Repo.Create(input)
	if err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}

	utils.LogEvent(s.RequestID, "reservation", "create", "id="+created.ID)
	s.spawn("create_emails", func() {
		s.Mail.SendReservationEmails(created.Email, created.Name, created.LastName, s.AdminEmail, created.ID)
	})

	return created, nil
}

// ListResult is the paginated listing payload.
type ListResult struct {
	Data  []models.Reservation `json:"data"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// List coerces raw query values and returns one page. page/limit fall back to
// 1 and the default page size when absent or non-numeric, never below 1.
func (s ReservationService) List(page, limit, search, date string) (ListResult, error) {
	p := coercePositive(page, 1)
	l := coercePositive(limit, s.defaultLimit())

	data, total, err := s.Repo.List(repositories.ListParams{
		Page:   p,
		Limit:  l,
		Search: strings.TrimSpace(search),
		Date:   strings.TrimSpace(date),
	})
	if err != nil {
		return ListResult{}, mapStoreErr(err)
	}
	return ListResult{Data: data, Total: total, Page: p, Limit: l}, nil
}

func coercePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < 1 {
		return 1
	}
	return n
}

func (s ReservationService) GetByID(id string) (models.Reservation, error) {
	res, err := s.Repo.GetByID(id)
	if err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}
	return res, nil
}

func (s ReservationService) GetByEmail(email string) ([]models.Reservation, error) {
	list, err := s.Repo.ListByEmail(email)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return list, nil
}

// Update applies a key-presence partial merge over an existing reservation.
func (s ReservationService) Update(id string, rawJSON []byte) (models.Reservation, error) {
	res, err := s.Repo.UpdatePartial(id, rawJSON)
	if err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}
	utils.LogEvent(s.RequestID, "reservation", "update", "id="+id)
	return res, nil
}

// UpdateStatus writes the new status unconditionally (transitions are
// free-form, self-loops included) and notifies the driver only when the status
// actually changed onto collect or issue. Notification failure never fails the
// persisted update.
func (s ReservationService) UpdateStatus(id, newStatus, notes string) (models.Reservation, error) {
	if !models.IsValidStatus(newStatus) {
		return models.Reservation{}, domain.ValidationError{Field: "status", Msg: "status harus pending, collect, atau issue"}
	}

	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}
	oldStatus := existing.Status

	if err := s.Repo.UpdateStatus(id, newStatus); err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}

	updated, err := s.Repo.GetByID(id)
	if err != nil {
		return models.Reservation{}, mapStoreErr(err)
	}

	msg := "id=" + id + " " + oldStatus + "->" + newStatus
	if n := strings.TrimSpace(notes); n != "" {
		msg += " notes=" + utils.NormalizeSpace(n)
	}
	utils.LogEvent(s.RequestID, "reservation", "update_status", msg)

	if oldStatus != newStatus && (newStatus == models.StatusCollect || newStatus == models.StatusIssue) {
		s.spawn("status_email", func() {
			_ = s.Mail.SendStatusUpdate(updated.Email, updated.Name, updated.LastName, newStatus)
		})
	}

	return updated, nil
}

func (s ReservationService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return mapStoreErr(err)
	}
	utils.LogEvent(s.RequestID, "reservation", "delete", "id="+id)
	return nil
}
