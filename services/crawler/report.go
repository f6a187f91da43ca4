package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpOptions struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type ReportOptions struct {
	Smtp       SmtpOptions `json:"smtp"`
	Recipients []string    `json:"recipients"`
}

// mailReport sends a plain-text run summary to the configured
// recipients when a run collected errors. purely advisory, a failure to
// send is logged and dropped.
func (s Service) mailReport(ctx context.Context, result CrawlResult) {
	if s.report.Smtp.Server == "" || len(s.report.Recipients) == 0 {
		return
	}
	if len(result.Errors) == 0 {
		return
	}

	ctx, span := tracer.Start(ctx, "mailReport")
	defer span.End()

	var body strings.Builder
	fmt.Fprintf(&body, "Crawl of %q finished at %s.\n\n", result.Source, result.CrawledAt)
	fmt.Fprintf(&body, "Crawled: %d\nInserted: %d\nSkipped: %d\nPosters uploaded: %d\n\n",
		result.TotalCrawled, result.Inserted, result.Skipped, result.PostersUploaded)
	fmt.Fprintf(&body, "Errors (%d):\n", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(&body, "  - %s\n", e)
	}

	mail := email.NewEmail()
	mail.From = s.report.Smtp.EmailAddress
	mail.To = s.report.Recipients
	mail.Subject = fmt.Sprintf("[escapelog] crawl %s finished with %d errors",
		result.Source, len(result.Errors))
	mail.Text = []byte(body.String())

	err := mail.Send(
		fmt.Sprintf("%s:%d", s.report.Smtp.Server, s.report.Smtp.Port),
		smtp.PlainAuth("", s.report.Smtp.EmailAddress, s.report.Smtp.Password, s.report.Smtp.Server),
	)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to send crawl report", "err", err)
	}
}
