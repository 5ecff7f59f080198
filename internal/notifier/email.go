package notifier

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/m04kA/LRS-RoomReservationService/internal/config"
)

// EmailSender отправляет письмо-подтверждение бронирования
type EmailSender interface {
	SendConfirmation(payload ConfirmationPayload) error
}

// SMTPSender отправляет письма через обычный SMTP.
// Специализированной почтовой библиотеки нет: письмо простое текстовое,
// net/smtp достаточно.
type SMTPSender struct {
	cfg config.SMTP
}

// NewSMTPSender создает отправителя писем
func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendConfirmation отправляет письмо-подтверждение
func (s *SMTPSender) SendConfirmation(payload ConfirmationPayload) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildConfirmationMessage(s.cfg.From, payload)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{payload.UserEmail}, msg); err != nil {
		return fmt.Errorf("notifier: failed to send confirmation email for reservation %d: %w",
			payload.ReservationID, err)
	}

	return nil
}

func buildConfirmationMessage(from string, p ConfirmationPayload) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", p.UserEmail)
	fmt.Fprintf(&b, "Subject: Подтверждение бронирования #%d\r\n", p.ReservationID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Здравствуйте, %s!\r\n\r\n", p.UserName)
	b.WriteString("Ваше бронирование подтверждено.\r\n\r\n")
	fmt.Fprintf(&b, "Комната: %s\r\n", p.RoomName)
	fmt.Fprintf(&b, "Библиотека: %s\r\n", p.LibraryName)
	fmt.Fprintf(&b, "Дата: %s\r\n", p.Date)
	fmt.Fprintf(&b, "Время: %s - %s\r\n", p.StartTime, p.EndTime)
	fmt.Fprintf(&b, "Номер бронирования: %d\r\n", p.ReservationID)

	return []byte(b.String())
}
