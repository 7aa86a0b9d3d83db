package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/shakti-crm/shakti-backend/internal/domain"
)

// ImportSummaryMailer emails the uploading admin a summary after a bulk
// roster import completes.
type ImportSummaryMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewImportSummaryMailer(host, port, username, password, from string) *ImportSummaryMailer {
	return &ImportSummaryMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *ImportSummaryMailer) SendImportSummary(ctx context.Context, email string, job *domain.EmployeeImportJob, result *domain.ImportResult) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	subject := fmt.Sprintf("Employee import %s completed", job.ID)
	body := fmt.Sprintf(
		"Your employee upload has finished.\n\nTotal rows: %d\nCreated: %d\nFailed: %d\n\nThe error sheet is available from the import detail page.",
		job.TotalRows, result.Successful, result.Failed,
	)

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
