package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/otterc137/GuessAnime/internal/models"
)

// EmailService sends operator emails via Amazon SES.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. If fromEmail is empty the
// service is disabled and all sends become no-ops.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled.
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklyDigest emails the current week's top leaderboard entries.
func (s *EmailService) SendWeeklyDigest(ctx context.Context, toEmail string, weekStart time.Time, entries []models.LeaderboardEntry) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly digest to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("GuessAnime leaderboard digest, week of %s", weekStart.Format("Jan 2 2006"))

	var htmlRows strings.Builder
	var textRows strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&htmlRows, "<tr><td>%d</td><td>%s</td><td>%d</td><td>%d/10</td></tr>\n",
			i+1, html.EscapeString(e.Name), e.Score, e.Correct)
		fmt.Fprintf(&textRows, "%2d. %-32s %6d  %d/10\n", i+1, e.Name, e.Score, e.Correct)
	}
	if len(entries) == 0 {
		htmlRows.WriteString("<tr><td colspan=\"4\">No games played this week.</td></tr>\n")
		textRows.WriteString("No games played this week.\n")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>GuessAnime Weekly Leaderboard</h1>
	<p>Top scores for the week starting %s:</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>#</th><th>Name</th><th>Score</th><th>Correct</th></tr>
		%s
	</table>
	<p style="font-size: 12px; color: #666;">This is an automated email from GuessAnime. Please do not reply.</p>
</body>
</html>
`, weekStart.Format("January 2, 2006"), htmlRows.String())

	textBody := fmt.Sprintf(`GuessAnime Weekly Leaderboard

Top scores for the week starting %s:

%s
---
This is an automated email from GuessAnime. Please do not reply.
`, weekStart.Format("January 2, 2006"), textRows.String())

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES.
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
	if result.MessageId != nil {
		log.Printf("Email sent: to=%s, subject=%s, id=%s", toEmail, subject, *result.MessageId)
	}
	return nil
}
