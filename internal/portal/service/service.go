// Package service implements the portal's store operations. It is the single
// mutation path for the demo dataset: every operation that changes visible
// state appends exactly one activity entry (documented exceptions aside) and
// keeps deadline states consistent with the document requests they depend on.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"portal/internal/platform/metrics"
	"portal/internal/portal/models"
	"portal/internal/portal/store"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/requestcontext"
)

// Service orchestrates the portal stores. It keeps orchestration out of
// handlers and domain logic thin; time always comes from the request context
// so one request observes one instant.
type Service struct {
	stores   store.Stores
	logger   *slog.Logger
	metrics  *metrics.Metrics
	notifier Notifier
	newID    func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func New(st store.Stores, opts ...Option) (*Service, error) {
	switch {
	case st.Clients == nil, st.Requests == nil, st.Deadlines == nil,
		st.Activities == nil, st.Rules == nil, st.Reports == nil:
		return nil, fmt.Errorf("all portal stores are required")
	}

	svc := &Service{
		stores:   st,
		logger:   slog.Default(),
		notifier: NopNotifier{},
		newID:    func() string { return "ac-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (s *Service) Clients(ctx context.Context) ([]models.Client, error) {
	return s.stores.Clients.List(ctx)
}

func (s *Service) Client(ctx context.Context, id string) (models.Client, error) {
	client, err := s.stores.Clients.FindByID(ctx, id)
	if err != nil {
		return models.Client{}, dErrors.Wrap(err, dErrors.CodeNotFound, "client not found")
	}
	return client, nil
}

// RequestFilter narrows document-request listings; zero values match all.
type RequestFilter struct {
	ClientID string
	Period   models.Period
	Status   models.RequestStatus
}

func (s *Service) Requests(ctx context.Context, filter RequestFilter) ([]models.DocumentRequest, error) {
	all, err := s.stores.Requests.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.DocumentRequest, 0, len(all))
	for _, r := range all {
		if filter.ClientID != "" && r.ClientID != filter.ClientID {
			continue
		}
		if filter.Period != "" && r.Period != filter.Period {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Deadlines lists all deadlines with their effective states. States are
// derived on every read, so a caller can never observe a stale projection
// even if an eager recompute was somehow missed.
func (s *Service) Deadlines(ctx context.Context) ([]models.Deadline, error) {
	deadlines, err := s.stores.Deadlines.List(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range deadlines {
		deadlines[i].State = models.ComputeDeadlineState(deadlines[i], requests)
	}
	return deadlines, nil
}

func (s *Service) Activities(ctx context.Context, clientID string) ([]models.Activity, error) {
	if clientID == "" {
		return s.stores.Activities.List(ctx)
	}
	return s.stores.Activities.ListByClient(ctx, clientID)
}

func (s *Service) Reports(ctx context.Context) ([]models.ReportItem, error) {
	return s.stores.Reports.List(ctx)
}

func (s *Service) ReminderRules(ctx context.Context) ([]models.ReminderRule, error) {
	return s.stores.Rules.List(ctx)
}

// ReminderRule returns the client's reminder configuration, falling back to
// the implicit default when none was ever stored.
func (s *Service) ReminderRule(ctx context.Context, clientID string) (models.ReminderRule, error) {
	rule, err := s.stores.Rules.FindByClient(ctx, clientID)
	if err != nil {
		return models.DefaultReminderRule(clientID), nil
	}
	return rule, nil
}

// ---------------------------------------------------------------------------
// Internals shared by the mutation operations
// ---------------------------------------------------------------------------

// logActivity appends one audit-trail entry. Activity logging must never be
// skipped on success paths; failures here surface as operation errors.
func (s *Service) logActivity(ctx context.Context, clientID string, who models.Actor, kind models.ActivityKind, title, detail string) error {
	entry := models.Activity{
		ID:       s.newID(),
		At:       requestcontext.Now(ctx),
		ClientID: clientID,
		Who:      who,
		Kind:     kind,
		Title:    title,
		Detail:   detail,
	}
	if err := s.stores.Activities.Append(ctx, entry); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "append activity")
	}
	s.logger.DebugContext(ctx, "activity recorded",
		"kind", string(kind),
		"client_id", clientID,
		"title", title,
	)
	return nil
}

// recomputeDeadlines refreshes the derived state of every deadline gated on
// the given request, using post-mutation statuses.
func (s *Service) recomputeDeadlines(ctx context.Context, requestID string) error {
	gated, err := s.stores.Deadlines.ListDependingOn(ctx, requestID)
	if err != nil {
		return err
	}
	if len(gated) == 0 {
		return nil
	}
	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range gated {
		next := models.ComputeDeadlineState(d, requests)
		if next == d.State {
			continue
		}
		d.State = next
		if err := s.stores.Deadlines.Save(ctx, d); err != nil {
			return err
		}
		s.logger.DebugContext(ctx, "deadline state recomputed",
			"deadline_id", d.ID,
			"state", string(next),
		)
	}
	return nil
}

func (s *Service) countOp(op string) {
	if s.metrics != nil {
		s.metrics.IncOperation(op)
	}
}

func (s *Service) today(ctx context.Context) string {
	return models.DateOnly(requestcontext.Now(ctx))
}
