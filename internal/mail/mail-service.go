package mail

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"contracthub/internal/dto"
)

// Service delivers OTP mail over SMTP. It doubles as the Kafka consumer
// handler for otp email events.
type Service struct {
	host         string
	port         string
	user         string
	password     string
	mailFrom     string
	mailFromName string
}

func NewService(host, port, user, password, mailFrom, mailFromName string) *Service {
	return &Service{
		host:         host,
		port:         port,
		user:         user,
		password:     password,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
	}
}

func (s *Service) HandleMessage(message string) error {
	var event dto.OtpEmailEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("otp email event received: email=%s purpose=%s", event.Email, event.Purpose)
	return s.SendOtpEmail(event.Email, event.Purpose, event.Otp)
}

func (s *Service) SendOtpEmail(to, purpose, otp string) error {
	subject := "ContractHub - Password Reset OTP"
	action := "password reset"
	if purpose == dto.OtpPurposeRegistration {
		subject = "ContractHub - Registration OTP"
		action = "registration"
	}

	body := strings.Join([]string{
		"Hello,",
		"",
		fmt.Sprintf("Your OTP for %s is: %s", action, otp),
		"",
		"This OTP is valid for 5 minutes.",
		"",
		"If you did not request this, please ignore this email.",
		"",
		"Regards,",
		"ContractHub",
	}, "\r\n")

	fromHeader := fmt.Sprintf("%s <%s>", s.mailFromName, s.mailFrom)
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	log.Printf("[MAIL] smtp sending to=%s via=%s:%s", to, s.host, s.port)

	if err := s.sendSMTPWithTimeout(to, []byte(msg)); err != nil {
		return err
	}

	log.Printf("[MAIL] sent to=%s", to)
	return nil
}

func (s *Service) sendSMTPWithTimeout(to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	conn, err := net.DialTimeout("tcp", addr, 8*time.Second)
	if err != nil {
		return err
	}
	// deadline covers the whole exchange, not just the dial
	_ = conn.SetDeadline(time.Now().Add(15 * time.Second))

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	if s.user != "" {
		auth := smtp.PlainAuth("", s.user, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.mailFrom); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
