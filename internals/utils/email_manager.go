package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/smtp"
	"strings"

	"github.com/nishashetty1/voteplay-simulator/internals/pending"
)

// Mailer dispatches verification codes. Handlers depend on this interface
// rather than the SMTP implementation so the channel can be swapped for a
// queue (or a stub in tests) without touching the registration flow.
type Mailer interface {
	SendOTP(toEmail string, code string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	AppName  string
	CodeExp  int // minutes a code stays valid, surfaced in the mail body
}

type EmailManager struct {
	Config *SMTPConfig
}

func NewEmailManager(config *SMTPConfig) *EmailManager {
	return &EmailManager{Config: config}
}

// GenerateVerificationCode returns a uniformly random 6-digit code.
// crypto/rand keeps codes unpredictable; leading zeros are preserved.
func GenerateVerificationCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("%06d", n.Int64())
}

// send handles the actual SMTP handshake and delivery.
func (em *EmailManager) send(toEmail string, subject string, body string) error {
	smtpAddr := fmt.Sprintf("%s:%d", em.Config.Host, em.Config.Port)

	// Headers per RFC 822; \r\n line endings, blank line before the body.
	headers := []string{
		fmt.Sprintf("From: %s", em.Config.User),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}

	message := strings.Join(headers, "\r\n")

	auth := smtp.PlainAuth("", em.Config.User, em.Config.Password, em.Config.Host)

	return smtp.SendMail(smtpAddr, auth, em.Config.User, []string{toEmail}, []byte(message))
}

// SendOTP sends the email-verification code for a pending signup.
func (em *EmailManager) SendOTP(toEmail string, code string) error {
	subject := fmt.Sprintf("%s - Verify Your Email", em.Config.AppName)

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Your %s one time password (OTP) is:\n\n"+
			"    %s\n\n"+
			"This OTP will expire in %d minutes. You have %d attempts to enter the correct OTP.\n\n"+
			"If you didn't request this verification, please ignore this email.\n\n"+
			"The %s Team",
		em.Config.AppName, code, em.Config.CodeExp, pending.MaxAttempts, em.Config.AppName)

	return em.send(toEmail, subject, body)
}
