package email

import (
	"fmt"
	"strings"

	"organmatch_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Notifier delivers coordinator alerts. Implementations must be safe
// for concurrent use.
type Notifier interface {
	NotifyMatchFound(to []string, alert MatchAlert) error
}

// MatchAlert is the payload for a critical-match notification.
type MatchAlert struct {
	DonorID        string
	DonorName      string
	OrganType      string
	RecipientID    string
	RecipientName  string
	MatchScore     float64
	UrgencyLevel   string
	RiskLevel      string
	RemainingHours float64
}

// SMTPNotifier sends alerts over SMTP via gomail.
type SMTPNotifier struct {
	cfg *config.Config
}

func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

func (n *SMTPNotifier) NotifyMatchFound(to []string, alert MatchAlert) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.Email.FromEmail, n.cfg.Email.FromName))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %s match for donor %s",
		strings.ToUpper(alert.UrgencyLevel), alert.OrganType, alert.DonorID))
	m.SetBody("text/html", renderMatchAlert(alert))

	d := gomail.NewDialer(
		n.cfg.Email.SMTPHost,
		n.cfg.Email.SMTPPort,
		n.cfg.Email.SMTPUsername,
		n.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func renderMatchAlert(alert MatchAlert) string {
	var b strings.Builder
	b.WriteString("<h2>Organ match proposed</h2>")
	fmt.Fprintf(&b, "<p>Donor <b>%s</b> (%s) matched recipient <b>%s</b> (%s).</p>",
		alert.DonorName, alert.DonorID, alert.RecipientName, alert.RecipientID)
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Organ: %s</li>", alert.OrganType)
	fmt.Fprintf(&b, "<li>Match score: %.2f</li>", alert.MatchScore)
	fmt.Fprintf(&b, "<li>Urgency: %s</li>", alert.UrgencyLevel)
	fmt.Fprintf(&b, "<li>Risk: %s</li>", alert.RiskLevel)
	fmt.Fprintf(&b, "<li>Viability remaining: %.1f hours</li>", alert.RemainingHours)
	b.WriteString("</ul>")
	b.WriteString("<p>Review and confirm the allocation in the registry.</p>")
	return b.String()
}

// NopNotifier is used when alerts are disabled in config.
type NopNotifier struct{}

func (NopNotifier) NotifyMatchFound([]string, MatchAlert) error { return nil }
