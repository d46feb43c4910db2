package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/pkg/sendgrid"
)

type NotificationService interface {
	SendContactMessage(ctx context.Context, req *models.ContactRequest) error
}

type notificationService struct {
	email sendgrid.EmailService
	to    string
}

func NewNotificationService(email sendgrid.EmailService, to string) NotificationService {
	return &notificationService{email: email, to: to}
}

func (s *notificationService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {

	if s.email == nil || s.to == "" {
		return appErrors.UpstreamError("The contact form is not available right now")
	}

	subject := fmt.Sprintf("Contact form: %s", req.Name)
	plainText := fmt.Sprintf("From: %s <%s>\n\n%s", req.Name, req.Email, req.Message)
	htmlContent := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(req.Message),
	)

	if err := s.email.Send(ctx, s.to, subject, plainText, htmlContent); err != nil {
		slog.Error("Contact email delivery failed", slog.String("error", err.Error()))

		return appErrors.UpstreamError("Failed to send your message. Please try again later.").WithError(err)
	}

	return nil
}
