package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

// DispatchResult summarizes one fan-out: how many notifications were created
// and anything noteworthy about recipient resolution.
type DispatchResult struct {
	Created int      `json:"created"`
	Notes   []string `json:"notes,omitempty"`
}

// Service fans workflow events out to approvers and initiators over email,
// SMS, and in-app channels. Delivery is best-effort: a channel failure is
// recorded on the notification and retried later, never surfaced to the
// workflow transition that triggered it.
type Service struct {
	repo    notification.Repository
	wfRepo  workflow.Repository
	userDir user.Directory
	email   notification.EmailSender
	sms     notification.SMSSender
	hub     notification.InAppHub
	limiter *rate.Limiter
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a notification coordinator. The limiter throttles bulk
// reminder sends so a large overdue sweep cannot flood the email gateway.
func NewService(
	repo notification.Repository,
	wfRepo workflow.Repository,
	userDir user.Directory,
	email notification.EmailSender,
	sms notification.SMSSender,
	hub notification.InAppHub,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		wfRepo:  wfRepo,
		userDir: userDir,
		email:   email,
		sms:     sms,
		hub:     hub,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:  logger.With().Str("service", "notification").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// UrgencyFor derives urgency from time remaining until the due date.
func UrgencyFor(now, dueDate time.Time) notification.Urgency {
	remaining := dueDate.Sub(now)
	switch {
	case remaining <= 4*time.Hour:
		return notification.UrgencyUrgent
	case remaining <= 24*time.Hour:
		return notification.UrgencyHigh
	default:
		return notification.UrgencyNormal
	}
}

func channelsFor(urgency notification.Urgency) []notification.Channel {
	if urgency == notification.UrgencyUrgent {
		return []notification.Channel{notification.ChannelEmail, notification.ChannelInApp, notification.ChannelSMS}
	}
	return []notification.Channel{notification.ChannelEmail, notification.ChannelInApp}
}

// SendApprovalRequired notifies the approvers whose turn it is. Sequential
// workflows target holders of the next chain role; parallel workflows target
// holders of every approver role. Zero resolvable recipients is recorded on
// the result, not returned as an error, so workflow creation still succeeds.
func (s *Service) SendApprovalRequired(ctx context.Context, wf *workflow.Workflow) (*DispatchResult, error) {
	roles := wf.ApproverRoles
	if !wf.ParallelApproval {
		next, ok := wf.NextRole()
		if !ok {
			return &DispatchResult{Notes: []string{"no next role in approval chain"}}, nil
		}
		roles = []string{next}
	}
	if wf.EscalatedTo != nil {
		roles = []string{*wf.EscalatedTo}
	}

	urgency := UrgencyFor(s.now(), wf.DueDate)
	result := &DispatchResult{}
	for _, role := range roles {
		holders, err := s.userDir.ListActiveByRole(ctx, wf.TenantID, role)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve approvers for role %q: %w", role, err)
		}
		if len(holders) == 0 {
			result.Notes = append(result.Notes, fmt.Sprintf("No approvers found for role %s", role))
			s.logger.Warn().
				Str("workflow_id", wf.WorkflowID.String()).
				Str("role", role).
				Msg("approval required but role has no active holders")
			continue
		}
		for _, u := range holders {
			n := notification.New(
				wf.WorkflowID, wf.TenantID,
				notification.TypeApprovalRequired,
				u.UserID.String(), urgency, channelsFor(urgency),
				"Invoice approval required",
				fmt.Sprintf("Invoice %.2f %s requires your approval as %s (due %s)",
					wf.Amount, wf.Currency, role, wf.DueDate.Format(time.RFC3339)),
			)
			n.RecipientRole = role
			if err := s.dispatch(ctx, n, u); err != nil {
				return nil, err
			}
			result.Created++
		}
	}
	return result, nil
}

// SendDecision informs the initiator that the workflow reached a decision.
func (s *Service) SendDecision(ctx context.Context, wf *workflow.Workflow, typ notification.Type) error {
	initiator, err := s.userDir.GetByUsername(ctx, wf.TenantID, wf.InitiatedBy)
	if err != nil {
		return fmt.Errorf("failed to resolve initiator: %w", err)
	}
	if initiator == nil {
		s.logger.Warn().
			Str("workflow_id", wf.WorkflowID.String()).
			Str("initiator", wf.InitiatedBy).
			Msg("decision notification skipped, initiator not found")
		return nil
	}
	verb := "approved"
	if typ == notification.TypeRejected {
		verb = "rejected"
	}
	n := notification.New(
		wf.WorkflowID, wf.TenantID, typ,
		initiator.UserID.String(), notification.UrgencyNormal,
		channelsFor(notification.UrgencyNormal),
		fmt.Sprintf("Invoice %s", verb),
		fmt.Sprintf("Your invoice of %.2f %s was %s", wf.Amount, wf.Currency, verb),
	)
	return s.dispatch(ctx, n, initiator)
}

// SendChangesRequested informs the initiator that an approver asked for
// changes before the review can continue.
func (s *Service) SendChangesRequested(ctx context.Context, wf *workflow.Workflow, details string) error {
	initiator, err := s.userDir.GetByUsername(ctx, wf.TenantID, wf.InitiatedBy)
	if err != nil {
		return fmt.Errorf("failed to resolve initiator: %w", err)
	}
	if initiator == nil {
		return nil
	}
	n := notification.New(
		wf.WorkflowID, wf.TenantID, notification.TypeChangesRequested,
		initiator.UserID.String(), notification.UrgencyHigh,
		channelsFor(notification.UrgencyHigh),
		"Changes requested on your invoice",
		details,
	)
	return s.dispatch(ctx, n, initiator)
}

// SendEscalation notifies holders of the escalation role and, separately,
// the approvers who let the deadline lapse.
func (s *Service) SendEscalation(ctx context.Context, wf *workflow.Workflow, toRole, lapsedRole string) error {
	holders, err := s.userDir.ListActiveByRole(ctx, wf.TenantID, toRole)
	if err != nil {
		return fmt.Errorf("failed to resolve escalation role: %w", err)
	}
	urgency := notification.UrgencyUrgent
	for _, u := range holders {
		n := notification.New(
			wf.WorkflowID, wf.TenantID, notification.TypeEscalation,
			u.UserID.String(), urgency, channelsFor(urgency),
			"Escalated invoice approval",
			fmt.Sprintf("Invoice %.2f %s was escalated to %s after the %s deadline passed",
				wf.Amount, wf.Currency, toRole, lapsedRole),
		)
		n.RecipientRole = toRole
		if err := s.dispatch(ctx, n, u); err != nil {
			return err
		}
	}

	lapsed, err := s.userDir.ListActiveByRole(ctx, wf.TenantID, lapsedRole)
	if err != nil {
		return fmt.Errorf("failed to resolve lapsed role: %w", err)
	}
	for _, u := range lapsed {
		n := notification.New(
			wf.WorkflowID, wf.TenantID, notification.TypeEscalation,
			u.UserID.String(), notification.UrgencyHigh, channelsFor(notification.UrgencyHigh),
			"Approval escalated past you",
			fmt.Sprintf("Invoice %.2f %s timed out at %s and moved to %s",
				wf.Amount, wf.Currency, lapsedRole, toRole),
		)
		n.RecipientRole = lapsedRole
		if err := s.dispatch(ctx, n, u); err != nil {
			return err
		}
	}
	return nil
}

// SendReminder nudges the pending approvers of a workflow nearing its due
// date. Non-pending workflows are skipped without error.
func (s *Service) SendReminder(ctx context.Context, wf *workflow.Workflow) (*DispatchResult, error) {
	if wf.Status != workflow.StatusPending {
		return nil, nil
	}
	roles := wf.ApproverRoles
	if !wf.ParallelApproval {
		next, ok := wf.NextRole()
		if !ok {
			return nil, nil
		}
		roles = []string{next}
	}
	if wf.EscalatedTo != nil {
		roles = []string{*wf.EscalatedTo}
	}

	urgency := UrgencyFor(s.now(), wf.DueDate)
	result := &DispatchResult{}
	for _, role := range roles {
		holders, err := s.userDir.ListActiveByRole(ctx, wf.TenantID, role)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve reminder recipients: %w", err)
		}
		for _, u := range holders {
			n := notification.New(
				wf.WorkflowID, wf.TenantID, notification.TypeReminder,
				u.UserID.String(), urgency, channelsFor(urgency),
				"Reminder: invoice approval pending",
				fmt.Sprintf("Invoice %.2f %s is still waiting for your approval, due %s",
					wf.Amount, wf.Currency, wf.DueDate.Format(time.RFC3339)),
			)
			n.RecipientRole = role
			if err := s.dispatch(ctx, n, u); err != nil {
				return nil, err
			}
			result.Created++
		}
	}
	return result, nil
}

// NextReminderInterval halves as the deadline approaches: a workflow with
// 48h remaining is reminded in 24h, one with 4h remaining in 2h.
func NextReminderInterval(now, dueDate time.Time) time.Duration {
	remaining := dueDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return remaining / 2
}

// BatchResult partitions a reminder sweep by outcome.
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// ProcessOverdueReminders sends reminders for every pending workflow due
// within the horizon. Sends are rate limited; one workflow's failure does
// not stop the batch.
func (s *Service) ProcessOverdueReminders(ctx context.Context, horizon time.Duration, limit int) (*BatchResult, error) {
	wfs, err := s.wfRepo.ListPendingDueWithin(ctx, s.now(), horizon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows due soon: %w", err)
	}
	result := &BatchResult{}
	for _, wf := range wfs {
		if err := s.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("reminder batch interrupted: %w", err)
		}
		if _, err := s.SendReminder(ctx, wf); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("reminder send failed")
			result.Failed = append(result.Failed, wf.WorkflowID.String())
			continue
		}
		result.Successful = append(result.Successful, wf.WorkflowID.String())
	}
	return result, nil
}

// dispatch persists the notification and attempts each requested channel.
// Channel outcomes are independent: email failing does not stop SMS or
// in-app delivery.
func (s *Service) dispatch(ctx context.Context, n *notification.Notification, recipient *user.User) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	s.deliver(ctx, n, recipient)
	if err := s.repo.Update(ctx, n); err != nil {
		return fmt.Errorf("failed to record delivery status: %w", err)
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, n *notification.Notification, recipient *user.User) {
	now := s.now()
	if n.HasChannel(notification.ChannelEmail) && recipient.Email != "" {
		if err := s.email.SendEmail(ctx, recipient.Email, n.Title, n.Message); err != nil {
			msg := err.Error()
			n.EmailError = &msg
			n.LastError = &msg
			s.logger.Warn().Err(err).
				Str("notification_id", n.NotificationID.String()).
				Msg("email delivery failed")
		} else {
			n.EmailSent = true
			n.EmailError = nil
		}
	}
	if n.HasChannel(notification.ChannelSMS) && recipient.Phone != nil {
		if err := s.sms.SendSMS(ctx, *recipient.Phone, n.Title+": "+n.Message); err != nil {
			msg := err.Error()
			n.SMSError = &msg
			n.LastError = &msg
			s.logger.Warn().Err(err).
				Str("notification_id", n.NotificationID.String()).
				Msg("sms delivery failed")
		} else {
			n.SMSSent = true
			n.SMSError = nil
		}
	}
	if n.HasChannel(notification.ChannelInApp) {
		payload, _ := notificationPayload(n)
		s.hub.BroadcastToUser(n.RecipientID, notification.NewMessage(string(n.Type), payload))
		n.InAppDelivered = true
	}
	n.SentAt = &now
}

// RetryFailed re-attempts delivery for notifications with channel failures
// that still have retry budget.
func (s *Service) RetryFailed(ctx context.Context, limit int) (int, error) {
	failed, err := s.repo.ListFailed(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list failed notifications: %w", err)
	}
	retried := 0
	for _, n := range failed {
		if !n.CanRetry() {
			continue
		}
		recipient, err := s.resolveRecipient(ctx, n)
		if err != nil || recipient == nil {
			continue
		}
		n.RetryCount++
		s.deliver(ctx, n, recipient)
		if err := s.repo.Update(ctx, n); err != nil {
			s.logger.Error().Err(err).
				Str("notification_id", n.NotificationID.String()).
				Msg("failed to record retry outcome")
			continue
		}
		retried++
	}
	return retried, nil
}

func (s *Service) resolveRecipient(ctx context.Context, n *notification.Notification) (*user.User, error) {
	// RecipientID is the directory UUID string set at dispatch time.
	uid, err := parseUUID(n.RecipientID)
	if err != nil {
		return nil, err
	}
	return s.userDir.GetByID(ctx, uid)
}

// MarkRead marks an in-app notification as read by its recipient.
func (s *Service) MarkRead(ctx context.Context, notificationID string) error {
	id, err := parseUUID(notificationID)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

// List returns notifications matching the filter.
func (s *Service) List(ctx context.Context, filter notification.Filter, limit, offset int) ([]*notification.Notification, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// WithClock overrides the time source in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithLimiter overrides the send rate limiter.
func (s *Service) WithLimiter(l *rate.Limiter) *Service {
	s.limiter = l
	return s
}
