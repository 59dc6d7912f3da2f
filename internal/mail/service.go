package mail

import (
	"context"
	"log"
	"sync"
	"time"

	"flexvry/internal/domain/models"
)

const defaultSendTimeout = 10 * time.Second

// MailService renders and dispatches reservation emails. All sends are
// best-effort: outcomes are logged, errors never reach the caller's response
// path.
type MailService struct {
	Sender       Sender
	DashboardURL string
	SendTimeout  time.Duration
}

func (s MailService) timeout() time.Duration {
	if s.SendTimeout > 0 {
		return s.SendTimeout
	}
	return defaultSendTimeout
}

func (s MailService) send(kind string, msg Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()

	err := s.Sender.Send(ctx, msg)
	if err != nil {
		log.Printf("[MAIL] gagal mengirim email kind=%s to=%s err=%v", kind, msg.To, err)
		return err
	}
	log.Printf("[MAIL] email terkirim kind=%s to=%s", kind, msg.To)
	return nil
}

// SendDriverConfirmation mails the intake confirmation to the driver.
func (s MailService) SendDriverConfirmation(driverEmail, firstName, lastName string) error {
	return s.send("driver_confirmation", Message{
		To:      driverEmail,
		Subject: subjectDriverConfirmation,
		HTML:    driverConfirmationBody(firstName, lastName),
	})
}

// SendAdminNotification alerts the admin about a new registration.
func (s MailService) SendAdminNotification(adminEmail, firstName, lastName string) error {
	return s.send("admin_notification", Message{
		To:      adminEmail,
		Subject: subjectAdminNotification,
		HTML:    adminNotificationBody(firstName, lastName, s.DashboardURL),
	})
}

// SendReservationEmails dispatches the driver confirmation and the admin
// notification concurrently. Both are attempted regardless of the other's
// outcome (settle-all, never fail-fast); panics in either send are contained.
func (s MailService) SendReservationEmails(driverEmail, firstName, lastName, adminEmail, reservationID string) {
	var wg sync.WaitGroup
	wg.Add(2)

	run := func(kind string, fn func() error) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[MAIL] panic saat mengirim email kind=%s reservation_id=%s: %v", kind, reservationID, r)
			}
		}()
		_ = fn()
	}

	go run("driver_confirmation", func() error {
		return s.SendDriverConfirmation(driverEmail, firstName, lastName)
	})
	go run("admin_notification", func() error {
		return s.SendAdminNotification(adminEmail, firstName, lastName)
	})

	wg.Wait()
	log.Printf("[MAIL] dispatch pembuatan reservasi selesai reservation_id=%s", reservationID)
}

// SendStatusUpdate mails the driver when a reservation lands on collect or
// issue. Other statuses send nothing.
func (s MailService) SendStatusUpdate(driverEmail, firstName, lastName, status string) error {
	var msg Message
	switch status {
	case models.StatusCollect:
		msg = Message{To: driverEmail, Subject: subjectCollect, HTML: collectBody(firstName, lastName)}
	case models.StatusIssue:
		msg = Message{To: driverEmail, Subject: subjectIssue, HTML: issueBody(firstName, lastName)}
	default:
		return nil
	}
	return s.send("status_"+status, msg)
}
