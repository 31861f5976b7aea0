package mail

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"

	"github.com/VenueBookHQ/VenueBook/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP
func SendMail(to string, subject string, body string) error {
	return SendMailWithAttachment(to, subject, body, "")
}

// SendMailWithAttachment sends an HTML email, optionally attaching the file
// at attachmentPath as a MIME part.
func SendMailWithAttachment(to string, subject string, body string, attachmentPath string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg, err := buildMessage(sender, to, subject, body, attachmentPath)
	if err != nil {
		log.Printf("SMTP message build error: %v", err)
		return err
	}

	err = smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

func buildMessage(sender, to, subject, body, attachmentPath string) ([]byte, error) {
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
		"MIME-Version: 1.0\r\n"

	if attachmentPath == "" {
		return []byte(headers +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body), nil
	}

	data, err := os.ReadFile(attachmentPath)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}

	const boundary = "venuebook-mail-boundary"
	msg := headers +
		fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary) +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
		body + "\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		fmt.Sprintf("Content-Type: application/octet-stream; name=%q\r\n", filepath.Base(attachmentPath)) +
		"Content-Transfer-Encoding: base64\r\n" +
		fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", filepath.Base(attachmentPath)) +
		base64.StdEncoding.EncodeToString(data) + "\r\n" +
		fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(msg), nil
}
