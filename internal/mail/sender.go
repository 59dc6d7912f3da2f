package mail

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"flexvry/internal/config"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. Implementations must honor ctx deadlines.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks an SMTP sender when credentials are configured, otherwise a
// no-op sender that logs what would have been delivered.
func NewSender(env config.Env) Sender {
	if env.SMTPUser == "" || env.SMTPPass == "" {
		log.Println("[MAIL] kredensial SMTP kosong, pengiriman email dinonaktifkan")
		return disabledSender{}
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(env.SMTPHost, env.SMTPPort, env.SMTPUser, env.SMTPPass),
		from:   fmt.Sprintf("Flex_vry Truck Reservation <%s>", env.MailFrom),
	}
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	// gomail has no context support; bound the dial+send with ctx so a dead
	// SMTP host cannot pin the background goroutine forever.
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type disabledSender struct{}

func (disabledSender) Send(_ context.Context, msg Message) error {
	log.Printf("[MAIL] pengiriman dilewati (SMTP nonaktif) to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
