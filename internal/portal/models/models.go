// Package models holds the portal domain entities. Types carry no behavior
// beyond enum validation and pure derivations; mutation goes through the
// service layer so every change is logged and kept consistent.
package models

import (
	"time"

	dErrors "portal/pkg/domain-errors"
)

// Period is a coarse calendar bucket ("YYYY-MM") a document request or report
// belongs to.
type Period string

// IsValid checks the "YYYY-MM" shape.
func (p Period) IsValid() bool {
	_, err := time.Parse("2006-01", string(p))
	return err == nil
}

// ParsePeriod validates a period key supplied by API callers.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid period: expected YYYY-MM")
	}
	return p, nil
}

// PracticeArea categorizes a client engagement.
type PracticeArea string

const (
	AreaCommercial     PracticeArea = "commercial"
	AreaEmployment     PracticeArea = "employment"
	AreaFamily         PracticeArea = "family"
	AreaCriminal       PracticeArea = "criminal"
	AreaAdministrative PracticeArea = "administrative"
	AreaOther          PracticeArea = "other"
)

// IsValid checks if the practice area is one of the supported enum values.
func (a PracticeArea) IsValid() bool {
	switch a {
	case AreaCommercial, AreaEmployment, AreaFamily, AreaCriminal, AreaAdministrative, AreaOther:
		return true
	}
	return false
}

// Severity grades a client risk.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Risk is a flagged concern on a client engagement.
type Risk struct {
	ID       string   `json:"id" yaml:"id"`
	Severity Severity `json:"severity" yaml:"severity"`
	Title    string   `json:"title" yaml:"title"`
	Note     string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Contact is a person reachable on the client side.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Client is an engaged client of the firm.
type Client struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	RegistrationNo string       `json:"registrationNo,omitempty" yaml:"registrationNo,omitempty"`
	PracticeArea   PracticeArea `json:"practiceArea" yaml:"practiceArea"`
	CaseNumber     string       `json:"caseNumber,omitempty" yaml:"caseNumber,omitempty"`
	Contacts       []Contact    `json:"contacts" yaml:"contacts"`
	LeadCounsel    string       `json:"leadCounsel" yaml:"leadCounsel"`
	Risks          []Risk       `json:"risks" yaml:"risks"`
}

// Actor distinguishes who performed an action: the client side or the firm side.
type Actor string

const (
	ActorClient Actor = "client"
	ActorFirm   Actor = "firm"
)

// IsValid checks if the actor is one of the supported enum values.
func (a Actor) IsValid() bool {
	return a == ActorClient || a == ActorFirm
}

// RequestStatus tracks a document request through its lifecycle.
type RequestStatus string

const (
	StatusMissing  RequestStatus = "missing"
	StatusWaiting  RequestStatus = "waiting"
	StatusReceived RequestStatus = "received"
)

// IsValid checks if the status is one of the supported enum values.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusMissing, StatusWaiting, StatusReceived:
		return true
	}
	return false
}

// ParseRequestStatus creates a RequestStatus from a string, validating it.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status: must be 'missing', 'waiting' or 'received'")
	}
	return st, nil
}

// RequestType categorizes the document a client must supply.
type RequestType string

const (
	TypeContract        RequestType = "contract"
	TypePowerOfAttorney RequestType = "power-of-attorney"
	TypeRecords         RequestType = "records"
	TypeEvidence        RequestType = "evidence"
	TypeCourt           RequestType = "court"
	TypeOther           RequestType = "other"
)

// IsValid checks if the request type is one of the supported enum values.
func (t RequestType) IsValid() bool {
	switch t {
	case TypeContract, TypePowerOfAttorney, TypeRecords, TypeEvidence, TypeCourt, TypeOther:
		return true
	}
	return false
}

// ParseRequestType creates a RequestType from a string, validating it.
func ParseRequestType(s string) (RequestType, error) {
	t := RequestType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid document request type")
	}
	return t, nil
}

// String returns the string representation.
func (t RequestType) String() string { return string(t) }

// FileRecord is a simulated upload attached to a document request.
type FileRecord struct {
	Name       string `json:"name" yaml:"name"`
	Size       string `json:"size" yaml:"size"`
	UploadedAt string `json:"uploadedAt" yaml:"uploadedAt"`
	By         Actor  `json:"by" yaml:"by"`
}

// DocumentRequest is one checklist item a client must supply for a period.
// Dates (DueDate, LastReminderAt, UpdatedAt) are calendar dates in
// "YYYY-MM-DD" form; UpdatedAt is set on every mutation.
type DocumentRequest struct {
	ID             string        `json:"id" yaml:"id"`
	ClientID       string        `json:"clientId" yaml:"clientId"`
	Period         Period        `json:"period" yaml:"period"`
	Type           RequestType   `json:"type" yaml:"type"`
	Title          string        `json:"title" yaml:"title"`
	DueDate        string        `json:"dueDate" yaml:"dueDate"`
	Status         RequestStatus `json:"status" yaml:"status"`
	Note           string        `json:"note,omitempty" yaml:"note,omitempty"`
	Assignee       string        `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	TemplateKey    string        `json:"templateKey,omitempty" yaml:"templateKey,omitempty"`
	LastReminderAt string        `json:"lastReminderAt,omitempty" yaml:"lastReminderAt,omitempty"`
	UpdatedAt      string        `json:"updatedAt" yaml:"updatedAt"`
	Files          []FileRecord  `json:"files" yaml:"files"`
}

// DedupeKey identifies a request for checklist deduplication: one row per
// (client, period, template). Seeded rows without provenance fall back to the
// title, which can collide with a template's formatted title for the same
// period; that suppression is accepted behavior.
func (r DocumentRequest) DedupeKey() string {
	key := r.TemplateKey
	if key == "" {
		key = r.Title
	}
	return r.ClientID + "|" + string(r.Period) + "|" + key
}

// DeadlineCategory classifies a calendar obligation.
type DeadlineCategory string

const (
	CategoryHearing DeadlineCategory = "hearing"
	CategoryTerm    DeadlineCategory = "term"
	CategoryReview  DeadlineCategory = "review"
	CategoryFiling  DeadlineCategory = "filing"
)

// DeadlineState is the effective readiness of a deadline. When the deadline
// depends on document requests it is derived, never authored.
type DeadlineState string

const (
	StateOK      DeadlineState = "ok"
	StateRisk    DeadlineState = "risk"
	StateBlocked DeadlineState = "blocked"
)

// Deadline is a calendar obligation, optionally gated on document requests.
// With a non-empty DependsOn, State must equal ComputeDeadlineState over the
// current dependent requests; with an empty DependsOn the stored State is
// authoritative.
type Deadline struct {
	ID        string           `json:"id" yaml:"id"`
	ClientID  string           `json:"clientId" yaml:"clientId"`
	Title     string           `json:"title" yaml:"title"`
	Date      string           `json:"date" yaml:"date"`
	Category  DeadlineCategory `json:"category" yaml:"category"`
	State     DeadlineState    `json:"state" yaml:"state"`
	Hint      string           `json:"hint,omitempty" yaml:"hint,omitempty"`
	DependsOn []string         `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// ActivityKind classifies an audit-trail entry.
type ActivityKind string

const (
	KindUpload   ActivityKind = "upload"
	KindComment  ActivityKind = "comment"
	KindReminder ActivityKind = "reminder"
	KindStatus   ActivityKind = "status"
)

// Activity is an immutable audit-trail entry. Entries are append-only and
// listed newest first.
type Activity struct {
	ID       string       `json:"id" yaml:"id"`
	At       time.Time    `json:"at" yaml:"at"`
	ClientID string       `json:"clientId" yaml:"clientId"`
	Who      Actor        `json:"who" yaml:"who"`
	Kind     ActivityKind `json:"kind" yaml:"kind"`
	Title    string       `json:"title" yaml:"title"`
	Detail   string       `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Channel is the delivery mechanism for reminders.
type Channel string

const (
	ChannelEmail  Channel = "email"
	ChannelPortal Channel = "portal"
)

// IsValid checks if the channel is one of the supported enum values.
func (c Channel) IsValid() bool {
	return c == ChannelEmail || c == ChannelPortal
}

// ParseChannel creates a Channel from a string, validating it.
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid channel: must be 'email' or 'portal'")
	}
	return c, nil
}

// Reminder day bounds; out-of-range input is clamped, not rejected.
const (
	MinReminderDaysBefore = 1
	MaxReminderDaysBefore = 30
)

// ReminderRule is per-client reminder configuration. Exactly one rule exists
// per client; lookups fall back to DefaultReminderRule when none was stored.
type ReminderRule struct {
	ClientID   string  `json:"clientId" yaml:"clientId"`
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	DaysBefore int     `json:"daysBefore" yaml:"daysBefore"`
	Channel    Channel `json:"channel" yaml:"channel"`
	CCAssignee bool    `json:"ccAssignee" yaml:"ccAssignee"`
}

// DefaultReminderRule is the implicit configuration for clients that never
// set one explicitly.
func DefaultReminderRule(clientID string) ReminderRule {
	return ReminderRule{
		ClientID:   clientID,
		Enabled:    true,
		DaysBefore: 7,
		Channel:    ChannelEmail,
	}
}

// ReportType categorizes a report artifact.
type ReportType string

const (
	ReportCaseSummary ReportType = "case-summary"
	ReportBilling     ReportType = "billing"
	ReportTimeline    ReportType = "timeline"
)

// ReportItem is a report artifact shared with a client. Publishing is
// idempotent: republishing overwrites PublishedAt with the latest instant.
type ReportItem struct {
	ID          string     `json:"id" yaml:"id"`
	ClientID    string     `json:"clientId" yaml:"clientId"`
	Period      Period     `json:"period" yaml:"period"`
	Type        ReportType `json:"type" yaml:"type"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	UpdatedAt   string     `json:"updatedAt" yaml:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" yaml:"publishedAt,omitempty"`
}

// DateOnly renders an instant as the calendar-date form used across the
// portal's date fields.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
