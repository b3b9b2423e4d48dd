package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"stagelink-backend/pkg/logger"
)

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService talks to a plain SMTP relay (mailpit in development)
func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	contentType := "text/plain; charset=\"UTF-8\""
	if req.IsHTML {
		contentType = "text/html; charset=\"UTF-8\""
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: %s\r\n\r\n%s",
		s.smtpFrom,
		strings.Join(req.To, ", "),
		req.Subject,
		contentType,
		req.Body,
	))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      req.To,
		"subject": req.Subject,
	})
	return nil
}
