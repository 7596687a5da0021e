package service

import (
	"context"
	"fmt"
	"strings"

	"portal/internal/portal/models"
	dErrors "portal/pkg/domain-errors"
	pstrings "portal/pkg/platform/strings"
)

// reminderDetailLimit caps override messages echoed into the activity log.
const reminderDetailLimit = 160

// Reminder is the payload handed to the outbound-notification collaborator.
type Reminder struct {
	DeadlineID string
	ClientID   string
	Channel    models.Channel
	Message    string
	Recipients []string
}

// Notifier delivers reminders on a channel. The portal core only depends on
// this contract; a real implementation would send email or push a portal
// notification.
type Notifier interface {
	Send(ctx context.Context, reminder Reminder) error
}

// NopNotifier is the demo collaborator: delivery always succeeds and the
// message is only echoed into the activity log.
type NopNotifier struct{}

func (NopNotifier) Send(context.Context, Reminder) error { return nil }

// ReminderRulePatch is a partial update; nil fields stay unchanged.
type ReminderRulePatch struct {
	Enabled    *bool           `json:"enabled,omitempty"`
	DaysBefore *int            `json:"daysBefore,omitempty"`
	Channel    *models.Channel `json:"channel,omitempty"`
	CCAssignee *bool           `json:"ccAssignee,omitempty"`
}

// UpdateReminderRule merges the patch into the client's rule, creating it
// with defaults first when absent. Out-of-range DaysBefore is clamped to the
// nearest bound rather than rejected. Rule changes append no activity entry.
func (s *Service) UpdateReminderRule(ctx context.Context, clientID string, patch ReminderRulePatch) (models.ReminderRule, error) {
	if _, err := s.stores.Clients.FindByID(ctx, clientID); err != nil {
		return models.ReminderRule{}, dErrors.Wrap(err, dErrors.CodeNotFound, "client not found")
	}

	rule, err := s.stores.Rules.FindByClient(ctx, clientID)
	if err != nil {
		rule = models.DefaultReminderRule(clientID)
	}

	if patch.Enabled != nil {
		rule.Enabled = *patch.Enabled
	}
	if patch.DaysBefore != nil {
		rule.DaysBefore = clampDays(*patch.DaysBefore)
	}
	if patch.Channel != nil {
		if !patch.Channel.IsValid() {
			return models.ReminderRule{}, dErrors.New(dErrors.CodeInvalidInput, "invalid channel: must be 'email' or 'portal'")
		}
		rule.Channel = *patch.Channel
	}
	if patch.CCAssignee != nil {
		rule.CCAssignee = *patch.CCAssignee
	}

	if err := s.stores.Rules.Save(ctx, rule); err != nil {
		return models.ReminderRule{}, dErrors.Wrap(err, dErrors.CodeInternal, "save reminder rule")
	}
	s.countOp("update_reminder_rule")
	return rule, nil
}

// SendReminderForDeadline reminds the client about every dependent document
// request not yet received: each such request gets its LastReminderAt stamped
// (status untouched, no per-request activity), the rendered message goes to
// the notifier, and exactly one reminder activity is appended for the
// deadline's client.
func (s *Service) SendReminderForDeadline(ctx context.Context, deadlineID string, channel models.Channel, messageOverride string) error {
	if !channel.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid channel: must be 'email' or 'portal'")
	}
	deadline, err := s.stores.Deadlines.FindByID(ctx, deadlineID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "deadline not found")
	}

	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "list document requests")
	}
	deps := make(map[string]struct{}, len(deadline.DependsOn))
	for _, id := range deadline.DependsOn {
		deps[id] = struct{}{}
	}

	today := s.today(ctx)
	var missingTypes []string
	for _, r := range requests {
		if _, ok := deps[r.ID]; !ok {
			continue
		}
		if r.Status == models.StatusReceived {
			continue
		}
		missingTypes = append(missingTypes, r.Type.String())
		r.LastReminderAt = today
		r.UpdatedAt = today
		if err := s.stores.Requests.Save(ctx, r); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "stamp reminder date")
		}
	}

	detail := messageOverride
	if detail == "" {
		missing := "none"
		if len(missingTypes) > 0 {
			missing = strings.Join(pstrings.DedupeAndTrim(missingTypes), ", ")
		}
		detail = fmt.Sprintf("Channel: %s. Missing: %s", channel, missing)
	} else {
		detail = truncate(detail, reminderDetailLimit)
	}

	if err := s.notifier.Send(ctx, Reminder{
		DeadlineID: deadlineID,
		ClientID:   deadline.ClientID,
		Channel:    channel,
		Message:    detail,
		Recipients: s.contactEmails(ctx, deadline.ClientID),
	}); err != nil {
		// Delivery is simulated in this scope; a failing collaborator must
		// not lose the audit trail.
		s.logger.WarnContext(ctx, "reminder delivery failed",
			"deadline_id", deadlineID,
			"error", err.Error(),
		)
	}

	if err := s.logActivity(ctx, deadline.ClientID, models.ActorFirm, models.KindReminder,
		fmt.Sprintf("Reminder sent: %s", deadline.Title),
		detail,
	); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RemindersSent.Inc()
	}
	s.countOp("send_reminder")
	return nil
}

func (s *Service) contactEmails(ctx context.Context, clientID string) []string {
	client, err := s.stores.Clients.FindByID(ctx, clientID)
	if err != nil {
		return nil
	}
	emails := make([]string, 0, len(client.Contacts))
	for _, c := range client.Contacts {
		if c.Email != "" {
			emails = append(emails, c.Email)
		}
	}
	return emails
}

func clampDays(n int) int {
	if n < models.MinReminderDaysBefore {
		return models.MinReminderDaysBefore
	}
	if n > models.MaxReminderDaysBefore {
		return models.MaxReminderDaysBefore
	}
	return n
}

// truncate caps a message at limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
