// Package handler wires the portal HTTP surface to the portal service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"portal/internal/portal/models"
	"portal/internal/portal/service"
	"portal/pkg/platform/httputil"
	"portal/pkg/requestcontext"
)

// Service defines the interface for portal operations.
type Service interface {
	Clients(ctx context.Context) ([]models.Client, error)
	Client(ctx context.Context, id string) (models.Client, error)
	UpdateClient(ctx context.Context, id string, patch service.ClientPatch) (models.Client, error)

	Requests(ctx context.Context, filter service.RequestFilter) ([]models.DocumentRequest, error)
	SetRequestStatus(ctx context.Context, id string, status models.RequestStatus) (models.DocumentRequest, error)
	SetRequestNote(ctx context.Context, id, note string) (models.DocumentRequest, error)
	SetRequestAssignee(ctx context.Context, id string, assignee *string) (models.DocumentRequest, error)
	AddRequestFile(ctx context.Context, id string, file models.FileRecord) (models.DocumentRequest, error)
	GenerateChecklist(ctx context.Context, clientID string, period models.Period, types []models.RequestType) ([]models.DocumentRequest, error)

	Deadlines(ctx context.Context) ([]models.Deadline, error)
	SendReminderForDeadline(ctx context.Context, deadlineID string, channel models.Channel, messageOverride string) error

	Activities(ctx context.Context, clientID string) ([]models.Activity, error)

	Reports(ctx context.Context) ([]models.ReportItem, error)
	PublishReport(ctx context.Context, id string) (models.ReportItem, error)

	ReminderRules(ctx context.Context) ([]models.ReminderRule, error)
	ReminderRule(ctx context.Context, clientID string) (models.ReminderRule, error)
	UpdateReminderRule(ctx context.Context, clientID string, patch service.ReminderRulePatch) (models.ReminderRule, error)
}

// Handler wires portal endpoints to the portal service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a portal handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts portal endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/portal", func(r chi.Router) {
		r.Get("/clients", h.HandleListClients)
		r.Get("/clients/{id}", h.HandleGetClient)
		r.Patch("/clients/{id}", h.HandleUpdateClient)

		r.Get("/requests", h.HandleListRequests)
		r.Patch("/requests/{id}/status", h.HandleSetRequestStatus)
		r.Patch("/requests/{id}/note", h.HandleSetRequestNote)
		r.Patch("/requests/{id}/assignee", h.HandleSetRequestAssignee)
		r.Post("/requests/{id}/files", h.HandleAddRequestFile)
		r.Post("/checklist", h.HandleGenerateChecklist)

		r.Get("/deadlines", h.HandleListDeadlines)
		r.Post("/deadlines/{id}/remind", h.HandleSendReminder)

		r.Get("/activities", h.HandleListActivities)

		r.Get("/reports", h.HandleListReports)
		r.Post("/reports/{id}/publish", h.HandlePublishReport)

		r.Get("/reminder-rules", h.HandleListReminderRules)
		r.Get("/reminder-rules/{clientID}", h.HandleGetReminderRule)
		r.Patch("/reminder-rules/{clientID}", h.HandleUpdateReminderRule)
	})
}

// HandleListClients handles GET /portal/clients requests.
func (h *Handler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.Clients(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, clients)
}

// HandleGetClient handles GET /portal/clients/{id} requests.
func (h *Handler) HandleGetClient(w http.ResponseWriter, r *http.Request) {
	client, err := h.service.Client(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, client)
}

// HandleUpdateClient handles PATCH /portal/clients/{id} requests.
func (h *Handler) HandleUpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	clientID := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[UpdateClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	client, err := h.service.UpdateClient(ctx, clientID, req.Patch())
	if err != nil {
		h.logger.ErrorContext(ctx, "client update failed",
			"request_id", requestID,
			"client_id", clientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "client updated",
		"request_id", requestID,
		"client_id", clientID,
	)
	httputil.WriteJSON(w, http.StatusOK, client)
}

// HandleListRequests handles GET /portal/requests requests. Supports
// client_id, period and status query filters.
func (h *Handler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	filter := service.RequestFilter{ClientID: r.URL.Query().Get("client_id")}

	if raw := r.URL.Query().Get("period"); raw != "" {
		period, err := models.ParsePeriod(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Period = period
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseRequestStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Status = status
	}

	requests, err := h.service.Requests(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}

// HandleSetRequestStatus handles PATCH /portal/requests/{id}/status requests.
func (h *Handler) HandleSetRequestStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[SetStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.SetRequestStatus(ctx, id, req.ParsedStatus())
	if err != nil {
		h.logger.ErrorContext(ctx, "status change failed",
			"request_id", requestID,
			"document_request_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "request status changed",
		"request_id", requestID,
		"document_request_id", id,
		"status", string(updated.Status),
	)
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleSetRequestNote handles PATCH /portal/requests/{id}/note requests.
func (h *Handler) HandleSetRequestNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[SetNoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.SetRequestNote(ctx, id, req.Note)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleSetRequestAssignee handles PATCH /portal/requests/{id}/assignee
// requests. A null or absent assignee clears the assignment.
func (h *Handler) HandleSetRequestAssignee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[SetAssigneeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.SetRequestAssignee(ctx, id, req.Assignee)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleAddRequestFile handles POST /portal/requests/{id}/files requests.
func (h *Handler) HandleAddRequestFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[AddFileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	updated, err := h.service.AddRequestFile(ctx, id, req.FileRecord())
	if err != nil {
		h.logger.ErrorContext(ctx, "file upload failed",
			"request_id", requestID,
			"document_request_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "file attached",
		"request_id", requestID,
		"document_request_id", id,
		"file", req.Name,
	)
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// HandleGenerateChecklist handles POST /portal/checklist requests.
func (h *Handler) HandleGenerateChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateChecklistRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	added, err := h.service.GenerateChecklist(ctx, req.ClientID, req.ParsedPeriod(), req.ParsedTypes())
	if err != nil {
		h.logger.ErrorContext(ctx, "checklist generation failed",
			"request_id", requestID,
			"client_id", req.ClientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checklist generated",
		"request_id", requestID,
		"client_id", req.ClientID,
		"period", string(req.ParsedPeriod()),
		"added", len(added),
	)
	httputil.WriteJSON(w, http.StatusCreated, added)
}

// HandleListDeadlines handles GET /portal/deadlines requests.
func (h *Handler) HandleListDeadlines(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.service.Deadlines(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deadlines)
}

// HandleSendReminder handles POST /portal/deadlines/{id}/remind requests.
func (h *Handler) HandleSendReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeAndPrepare[SendReminderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.SendReminderForDeadline(ctx, id, req.ParsedChannel(), req.Message); err != nil {
		h.logger.ErrorContext(ctx, "reminder failed",
			"request_id", requestID,
			"deadline_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "reminder sent",
		"request_id", requestID,
		"deadline_id", id,
		"channel", req.Channel,
	)
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// HandleListActivities handles GET /portal/activities requests. An optional
// client_id query narrows the log to one client.
func (h *Handler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.Activities(r.Context(), r.URL.Query().Get("client_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, activities)
}

// HandleListReports handles GET /portal/reports requests.
func (h *Handler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.Reports(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

// HandlePublishReport handles POST /portal/reports/{id}/publish requests.
func (h *Handler) HandlePublishReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	report, err := h.service.PublishReport(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report published",
		"request_id", requestID,
		"report_id", id,
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// HandleListReminderRules handles GET /portal/reminder-rules requests.
func (h *Handler) HandleListReminderRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ReminderRules(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rules)
}

// HandleGetReminderRule handles GET /portal/reminder-rules/{clientID}
// requests. Clients without a stored rule get the implicit default.
func (h *Handler) HandleGetReminderRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.service.ReminderRule(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rule)
}

// HandleUpdateReminderRule handles PATCH /portal/reminder-rules/{clientID}
// requests.
func (h *Handler) HandleUpdateReminderRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	clientID := chi.URLParam(r, "clientID")

	req, ok := httputil.DecodeAndPrepare[UpdateReminderRuleRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rule, err := h.service.UpdateReminderRule(ctx, clientID, req.Patch())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "reminder rule updated",
		"request_id", requestID,
		"client_id", clientID,
	)
	httputil.WriteJSON(w, http.StatusOK, rule)
}

var _ Service = (*service.Service)(nil)
