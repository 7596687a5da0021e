package handler

import (
	"strings"

	"portal/internal/portal/models"
	"portal/internal/portal/service"
	dErrors "portal/pkg/domain-errors"
	pstrings "portal/pkg/platform/strings"
)

// UpdateClientRequest is the HTTP request body for PATCH /portal/clients/{id}.
type UpdateClientRequest struct {
	Name           *string              `json:"name"`
	RegistrationNo *string              `json:"registrationNo"`
	PracticeArea   *models.PracticeArea `json:"practiceArea"`
	CaseNumber     *string              `json:"caseNumber"`
	LeadCounsel    *string              `json:"leadCounsel"`
	Contacts       []models.Contact     `json:"contacts"`
	Risks          []models.Risk        `json:"risks"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateClientRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "name must not be empty")
		}
		r.Name = &trimmed
	}
	if r.PracticeArea != nil && !r.PracticeArea.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid practice area")
	}
	return nil
}

// Patch maps the body onto the service-level patch.
func (r *UpdateClientRequest) Patch() service.ClientPatch {
	return service.ClientPatch{
		Name:           r.Name,
		RegistrationNo: r.RegistrationNo,
		PracticeArea:   r.PracticeArea,
		CaseNumber:     r.CaseNumber,
		LeadCounsel:    r.LeadCounsel,
		Contacts:       r.Contacts,
		Risks:          r.Risks,
	}
}

// SetStatusRequest is the HTTP request body for PATCH /portal/requests/{id}/status.
type SetStatusRequest struct {
	Status string `json:"status"`

	parsedStatus models.RequestStatus
}

// Validate validates and parses the request.
func (r *SetStatusRequest) Validate() error {
	status, err := models.ParseRequestStatus(strings.TrimSpace(r.Status))
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

// ParsedStatus returns the validated status.
func (r *SetStatusRequest) ParsedStatus() models.RequestStatus {
	return r.parsedStatus
}

// SetNoteRequest is the HTTP request body for PATCH /portal/requests/{id}/note.
// An empty note clears the field.
type SetNoteRequest struct {
	Note string `json:"note"`
}

func (r *SetNoteRequest) Validate() error {
	r.Note = strings.TrimSpace(r.Note)
	return nil
}

// SetAssigneeRequest is the HTTP request body for PATCH
// /portal/requests/{id}/assignee. A null assignee clears the assignment.
type SetAssigneeRequest struct {
	Assignee *string `json:"assignee"`
}

func (r *SetAssigneeRequest) Validate() error {
	if r.Assignee != nil {
		trimmed := strings.TrimSpace(*r.Assignee)
		r.Assignee = &trimmed
	}
	return nil
}

// AddFileRequest is the HTTP request body for POST /portal/requests/{id}/files.
type AddFileRequest struct {
	Name       string `json:"name"`
	Size       string `json:"size"`
	UploadedAt string `json:"uploadedAt"`
	By         string `json:"by"`

	parsedBy models.Actor
}

// Validate validates and parses the request.
func (r *AddFileRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "file name is required")
	}

	r.By = strings.TrimSpace(r.By)
	if r.By != "" {
		actor := models.Actor(r.By)
		if !actor.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "by must be 'client' or 'firm'")
		}
		r.parsedBy = actor
	}
	return nil
}

// FileRecord maps the body onto the domain file record. Zero-value fields are
// defaulted by the service.
func (r *AddFileRequest) FileRecord() models.FileRecord {
	return models.FileRecord{
		Name:       r.Name,
		Size:       r.Size,
		UploadedAt: r.UploadedAt,
		By:         r.parsedBy,
	}
}

// GenerateChecklistRequest is the HTTP request body for POST /portal/checklist.
type GenerateChecklistRequest struct {
	ClientID string   `json:"clientId"`
	Period   string   `json:"period"`
	Types    []string `json:"types"`

	parsedPeriod models.Period
	parsedTypes  []models.RequestType
}

// Validate validates and parses the request. An empty types list means every
// eligible template.
func (r *GenerateChecklistRequest) Validate() error {
	r.ClientID = strings.TrimSpace(r.ClientID)
	if r.ClientID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "clientId is required")
	}

	period, err := models.ParsePeriod(strings.TrimSpace(r.Period))
	if err != nil {
		return err
	}
	r.parsedPeriod = period

	for _, raw := range pstrings.DedupeAndTrimLower(r.Types) {
		t, err := models.ParseRequestType(raw)
		if err != nil {
			return err
		}
		r.parsedTypes = append(r.parsedTypes, t)
	}
	return nil
}

// ParsedPeriod returns the validated period.
func (r *GenerateChecklistRequest) ParsedPeriod() models.Period {
	return r.parsedPeriod
}

// ParsedTypes returns the validated type filter, nil when absent.
func (r *GenerateChecklistRequest) ParsedTypes() []models.RequestType {
	return r.parsedTypes
}

// SendReminderRequest is the HTTP request body for POST
// /portal/deadlines/{id}/remind.
type SendReminderRequest struct {
	Channel string `json:"channel"`
	Message string `json:"message"`

	parsedChannel models.Channel
}

// Validate validates and parses the request. Channel defaults to email.
func (r *SendReminderRequest) Validate() error {
	r.Channel = strings.TrimSpace(r.Channel)
	if r.Channel == "" {
		r.Channel = string(models.ChannelEmail)
	}
	channel, err := models.ParseChannel(r.Channel)
	if err != nil {
		return err
	}
	r.parsedChannel = channel
	r.Message = strings.TrimSpace(r.Message)
	return nil
}

// ParsedChannel returns the validated channel.
func (r *SendReminderRequest) ParsedChannel() models.Channel {
	return r.parsedChannel
}

// UpdateReminderRuleRequest is the HTTP request body for PATCH
// /portal/reminder-rules/{clientID}.
type UpdateReminderRuleRequest struct {
	Enabled    *bool   `json:"enabled"`
	DaysBefore *int    `json:"daysBefore"`
	Channel    *string `json:"channel"`
	CCAssignee *bool   `json:"ccAssignee"`

	parsedChannel *models.Channel
}

// Validate validates and parses the request.
func (r *UpdateReminderRuleRequest) Validate() error {
	if r.Channel != nil {
		channel, err := models.ParseChannel(strings.TrimSpace(*r.Channel))
		if err != nil {
			return err
		}
		r.parsedChannel = &channel
	}
	return nil
}

// Patch maps the body onto the service-level patch. Out-of-range DaysBefore
// is passed through; the service clamps it.
func (r *UpdateReminderRuleRequest) Patch() service.ReminderRulePatch {
	return service.ReminderRulePatch{
		Enabled:    r.Enabled,
		DaysBefore: r.DaysBefore,
		Channel:    r.parsedChannel,
		CCAssignee: r.CCAssignee,
	}
}
