package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"kidlearn/internal/logger"
	"kidlearn/internal/models"
)

// sesAPI is the part of the SES client the service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends progress reports to parents via Amazon SES
type EmailService struct {
	client     sesAPI
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	log        *logger.Logger
}

// NewEmailService creates a new email service. An empty fromEmail gives a
// disabled service that only logs.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string, log *logger.Logger) (*EmailService, error) {
	if fromEmail == "" {
		log.Info("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, log: log}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("email service enabled", "from", fromEmail, "region", awsRegion)
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL, log), nil
}

func newEmailService(client sesAPI, fromEmail, fromName, appBaseURL string, log *logger.Logger) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		enabled:    true,
		log:        log,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport emails a dashboard summary to toEmail
func (s *EmailService) SendProgressReport(ctx context.Context, toEmail string, d *models.Dashboard) error {
	if !s.enabled {
		s.log.Info("skipping email send (service disabled)", "to", toEmail, "user_id", d.User.ID)
		return nil
	}
	subject, htmlBody, textBody := RenderProgressReport(d, s.appBaseURL)
	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// RenderProgressReport builds the subject, HTML body and text body of a report
func RenderProgressReport(d *models.Dashboard, appBaseURL string) (subject, htmlBody, textBody string) {
	name := d.User.Name
	subject = fmt.Sprintf("%s's learning progress", name)

	var text strings.Builder
	fmt.Fprintf(&text, "Progress report for %s (age %d)\n\n", name, d.User.Age)
	fmt.Fprintf(&text, "Total stars: %d\n", d.User.TotalStars)
	fmt.Fprintf(&text, "Time this week: %.1f minutes\n", d.WeeklyMinutes)
	fmt.Fprintf(&text, "Time overall: %.1f minutes\n\n", d.TotalMinutes)
	writeLevels(&text, "Reading", d.Reading)
	writeLevels(&text, "Math", d.Math)
	if len(d.Achievements) > 0 {
		text.WriteString("Achievements:\n")
		for _, a := range d.Achievements {
			fmt.Fprintf(&text, "  %s - %s\n", a.Title, a.Description)
		}
	}
	if appBaseURL != "" {
		fmt.Fprintf(&text, "\nSee more at %s\n", appBaseURL)
	}
	textBody = text.String()

	var rows strings.Builder
	for _, day := range d.WeeklyActivity {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%.1f min</td></tr>", day.Weekday, day.Minutes)
	}
	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>%s's learning progress</h2>
	<p>Total stars: <strong>%d</strong></p>
	<p>This week: %.1f minutes. Overall: %.1f minutes.</p>
	<table>%s</table>
	<pre>%s</pre>
</body>
</html>`,
		html.EscapeString(name), d.User.TotalStars, d.WeeklyMinutes, d.TotalMinutes,
		rows.String(), html.EscapeString(textBody))

	return subject, htmlBody, textBody
}

func writeLevels(b *strings.Builder, label string, levels []models.LevelSummary) {
	fmt.Fprintf(b, "%s:\n", label)
	for _, l := range levels {
		if !l.Started {
			fmt.Fprintf(b, "  Level %d: not started\n", l.Level)
			continue
		}
		fmt.Fprintf(b, "  Level %d: %d/%d items, %d stars\n", l.Level, l.Completed, l.Total, l.Stars)
	}
	b.WriteString("\n")
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	messageID := ""
	if result != nil && result.MessageId != nil {
		messageID = *result.MessageId
	}
	s.log.Info("email sent", "to", toEmail, "subject", subject, "message_id", messageID)
	return nil
}
