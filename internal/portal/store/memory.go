package store

import (
	"context"
	"slices"
	"sync"

	"portal/internal/portal/models"
	"portal/pkg/platform/sentinel"
)

// In-memory stores keep the demo dataset lightweight and testable. They
// intentionally favor clarity over performance: collections are ordered
// slices, lookups are linear scans, and all data fits in a few kilobytes.
//
// Ordering contracts: clients, deadlines and reports keep insertion order;
// new document requests are prepended so freshly generated checklist rows
// list first; activities are prepended so the log reads newest first.

type InMemoryClientStore struct {
	mu      sync.RWMutex
	clients []models.Client
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{}
}

func (s *InMemoryClientStore) Save(_ context.Context, client models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == client.ID {
			s.clients[i] = client
			return nil
		}
	}
	s.clients = append(s.clients, client)
	return nil
}

func (s *InMemoryClientStore) FindByID(_ context.Context, id string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, sentinel.ErrNotFound
}

func (s *InMemoryClientStore) List(_ context.Context) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients), nil
}

type InMemoryRequestStore struct {
	mu       sync.RWMutex
	requests []models.DocumentRequest
}

func NewInMemoryRequestStore() *InMemoryRequestStore {
	return &InMemoryRequestStore{}
}

func (s *InMemoryRequestStore) Save(_ context.Context, request models.DocumentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == request.ID {
			s.requests[i] = request
			return nil
		}
	}
	s.requests = append([]models.DocumentRequest{request}, s.requests...)
	return nil
}

func (s *InMemoryRequestStore) FindByID(_ context.Context, id string) (models.DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return models.DocumentRequest{}, sentinel.ErrNotFound
}

func (s *InMemoryRequestStore) List(_ context.Context) ([]models.DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.requests), nil
}

func (s *InMemoryRequestStore) ListByClient(_ context.Context, clientID string) ([]models.DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DocumentRequest, 0)
	for _, r := range s.requests {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type InMemoryDeadlineStore struct {
	mu        sync.RWMutex
	deadlines []models.Deadline
}

func NewInMemoryDeadlineStore() *InMemoryDeadlineStore {
	return &InMemoryDeadlineStore{}
}

func (s *InMemoryDeadlineStore) Save(_ context.Context, deadline models.Deadline) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deadlines {
		if s.deadlines[i].ID == deadline.ID {
			s.deadlines[i] = deadline
			return nil
		}
	}
	s.deadlines = append(s.deadlines, deadline)
	return nil
}

func (s *InMemoryDeadlineStore) FindByID(_ context.Context, id string) (models.Deadline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.deadlines {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Deadline{}, sentinel.ErrNotFound
}

func (s *InMemoryDeadlineStore) List(_ context.Context) ([]models.Deadline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deadlines), nil
}

func (s *InMemoryDeadlineStore) ListDependingOn(_ context.Context, requestID string) ([]models.Deadline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Deadline, 0)
	for _, d := range s.deadlines {
		if slices.Contains(d.DependsOn, requestID) {
			out = append(out, d)
		}
	}
	return out, nil
}

type InMemoryActivityStore struct {
	mu         sync.RWMutex
	activities []models.Activity
}

func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{}
}

func (s *InMemoryActivityStore) Append(_ context.Context, activity models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append([]models.Activity{activity}, s.activities...)
	return nil
}

func (s *InMemoryActivityStore) List(_ context.Context) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.activities), nil
}

func (s *InMemoryActivityStore) ListByClient(_ context.Context, clientID string) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Activity, 0)
	for _, a := range s.activities {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

type InMemoryReminderRuleStore struct {
	mu    sync.RWMutex
	rules map[string]models.ReminderRule
}

func NewInMemoryReminderRuleStore() *InMemoryReminderRuleStore {
	return &InMemoryReminderRuleStore{rules: make(map[string]models.ReminderRule)}
}

func (s *InMemoryReminderRuleStore) Save(_ context.Context, rule models.ReminderRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.ClientID] = rule
	return nil
}

func (s *InMemoryReminderRuleStore) FindByClient(_ context.Context, clientID string) (models.ReminderRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rule, ok := s.rules[clientID]; ok {
		return rule, nil
	}
	return models.ReminderRule{}, sentinel.ErrNotFound
}

func (s *InMemoryReminderRuleStore) List(_ context.Context) ([]models.ReminderRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ReminderRule, 0, len(s.rules))
	for _, rule := range s.rules {
		out = append(out, rule)
	}
	return out, nil
}

type InMemoryReportStore struct {
	mu      sync.RWMutex
	reports []models.ReportItem
}

func NewInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{}
}

func (s *InMemoryReportStore) Save(_ context.Context, report models.ReportItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == report.ID {
			s.reports[i] = report
			return nil
		}
	}
	s.reports = append(s.reports, report)
	return nil
}

func (s *InMemoryReportStore) FindByID(_ context.Context, id string) (models.ReportItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return models.ReportItem{}, sentinel.ErrNotFound
}

func (s *InMemoryReportStore) List(_ context.Context) ([]models.ReportItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reports), nil
}
