package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	appURL   string
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
// appURL is the public address of the app, used for the event links in mails.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, appURL string, logger *slog.Logger) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
		appURL:   strings.TrimRight(appURL, "/"),
		logger:   logger,
	}
}

// SendWelcomeMessage sends a welcome email pointing the new user at the event
// listing and at the events they attend.
func (s *emailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome message data is nil")
	}
	if data.BrowseEventsURL == "" {
		data.BrowseEventsURL = s.appURL + "/events"
	}
	if data.AttendingURL == "" {
		data.AttendingURL = s.appURL + "/events/attending"
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	s.logger.InfoContext(ctx, "welcome email sent", "user_id", data.UserID)
	return nil
}
