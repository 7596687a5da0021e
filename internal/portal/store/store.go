// Package store owns the portal's collections. Stores are interface-driven to
// keep the domain logic testable and to allow swapping in-memory, file-based,
// or external persistence without rewiring business code.
package store

import (
	"context"

	"portal/internal/portal/models"
)

type ClientStore interface {
	Save(ctx context.Context, client models.Client) error
	FindByID(ctx context.Context, id string) (models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
}

type RequestStore interface {
	Save(ctx context.Context, request models.DocumentRequest) error
	FindByID(ctx context.Context, id string) (models.DocumentRequest, error)
	List(ctx context.Context) ([]models.DocumentRequest, error)
	ListByClient(ctx context.Context, clientID string) ([]models.DocumentRequest, error)
}

type DeadlineStore interface {
	Save(ctx context.Context, deadline models.Deadline) error
	FindByID(ctx context.Context, id string) (models.Deadline, error)
	List(ctx context.Context) ([]models.Deadline, error)
	// ListDependingOn returns deadlines gated on the given document request.
	ListDependingOn(ctx context.Context, requestID string) ([]models.Deadline, error)
}

// ActivityStore is append-only; entries are listed newest first and are never
// edited or deleted.
type ActivityStore interface {
	Append(ctx context.Context, activity models.Activity) error
	List(ctx context.Context) ([]models.Activity, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Activity, error)
}

type ReminderRuleStore interface {
	Save(ctx context.Context, rule models.ReminderRule) error
	FindByClient(ctx context.Context, clientID string) (models.ReminderRule, error)
	List(ctx context.Context) ([]models.ReminderRule, error)
}

type ReportStore interface {
	Save(ctx context.Context, report models.ReportItem) error
	FindByID(ctx context.Context, id string) (models.ReportItem, error)
	List(ctx context.Context) ([]models.ReportItem, error)
}

// Stores bundles one store per collection so wiring stays a single argument.
type Stores struct {
	Clients    ClientStore
	Requests   RequestStore
	Deadlines  DeadlineStore
	Activities ActivityStore
	Rules      ReminderRuleStore
	Reports    ReportStore
}

// NewInMemory builds the in-memory store bundle used by the demo portal.
func NewInMemory() Stores {
	return Stores{
		Clients:    NewInMemoryClientStore(),
		Requests:   NewInMemoryRequestStore(),
		Deadlines:  NewInMemoryDeadlineStore(),
		Activities: NewInMemoryActivityStore(),
		Rules:      NewInMemoryReminderRuleStore(),
		Reports:    NewInMemoryReportStore(),
	}
}
