package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/platform/sendgrid"
	"github.com/seabloom/tidewed-backend/internal/repos"
)

// InvitationService emails the wedding code to a partner. The email carries
// both the raw code and a deep link to the join screen; a missing sendgrid
// configuration disables the feature rather than the whole server.
type InvitationService interface {
	SendPartnerInvite(ctx context.Context, userID uuid.UUID, partnerEmail string) error
}

type invitationService struct {
	log            *logger.Logger
	emailClient    sendgrid.Client
	userRepo       repos.UserRepo
	weddingService WeddingService
	appBaseURL     string
}

func NewInvitationService(
	log *logger.Logger,
	emailClient sendgrid.Client,
	userRepo repos.UserRepo,
	weddingService WeddingService,
	appBaseURL string,
) InvitationService {
	serviceLog := log.With("service", "InvitationService")
	return &invitationService{
		log:            serviceLog,
		emailClient:    emailClient,
		userRepo:       userRepo,
		weddingService: weddingService,
		appBaseURL:     strings.TrimRight(appBaseURL, "/"),
	}
}

func (is *invitationService) SendPartnerInvite(ctx context.Context, userID uuid.UUID, partnerEmail string) error {
	if is.emailClient == nil {
		return apierr.StorageUnavailable(fmt.Errorf("email delivery is not configured"))
	}
	partnerEmail = normalization.ParseInputString(partnerEmail)
	if partnerEmail == "" {
		return apierr.InvalidInput("partner email is required")
	}
	if _, pErr := mail.ParseAddress(partnerEmail); pErr != nil {
		return apierr.InvalidInput("partner email is not a valid address")
	}

	wedding, rErr := is.weddingService.ResolveForUser(ctx, userID)
	if rErr != nil {
		return rErr
	}
	if !wedding.Solo() {
		return apierr.AlreadyFull()
	}

	senderName := "Your partner"
	if users, uErr := is.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID}); uErr == nil && len(users) > 0 {
		if name := strings.TrimSpace(users[0].FullName); name != "" {
			senderName = name
		}
	}

	code := wedding.ID.String()
	joinLink := fmt.Sprintf("%s/join?code=%s", is.appBaseURL, code)
	subject := fmt.Sprintf("%s invited you to plan your wedding together", senderName)
	text := fmt.Sprintf(
		"%s invited you to their wedding plan.\n\nJoin with this code: %s\nOr open: %s\n",
		senderName, code, joinLink,
	)
	html := fmt.Sprintf(
		"<p>%s invited you to their wedding plan.</p><p>Join with this code: <strong>%s</strong></p><p><a href=%q>Open the planner</a></p>",
		senderName, code, joinLink,
	)

	result, sErr := is.emailClient.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: partnerEmail}},
		Subject: subject,
		Text:    text,
		HTML:    html,
	})
	if sErr != nil {
		return apierr.StorageUnavailable(fmt.Errorf("failed to send invitation email: %w", sErr))
	}
	is.log.Info("Partner invitation sent",
		"wedding_id", wedding.ID, "status_code", result.StatusCode, "message_id", result.MessageID)
	return nil
}
