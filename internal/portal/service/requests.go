package service

import (
	"context"
	"fmt"
	"strings"

	"portal/internal/portal/models"
	"portal/internal/portal/templates"
	dErrors "portal/pkg/domain-errors"
)

// SetRequestStatus sets a document request's status and refreshes the derived
// state of every deadline gated on it, using the post-update status.
func (s *Service) SetRequestStatus(ctx context.Context, requestID string, status models.RequestStatus) (models.DocumentRequest, error) {
	if !status.IsValid() {
		return models.DocumentRequest{}, dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	request, err := s.stores.Requests.FindByID(ctx, requestID)
	if err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document request not found")
	}

	request.Status = status
	request.UpdatedAt = s.today(ctx)
	if err := s.stores.Requests.Save(ctx, request); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "save document request")
	}

	if err := s.logActivity(ctx, request.ClientID, models.ActorFirm, models.KindStatus,
		fmt.Sprintf("Document request status changed: %s", status),
		fmt.Sprintf("Request %s", requestID),
	); err != nil {
		return models.DocumentRequest{}, err
	}
	if err := s.recomputeDeadlines(ctx, requestID); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "recompute deadlines")
	}
	s.countOp("set_request_status")
	return request, nil
}

// SetRequestNote replaces the request's note.
func (s *Service) SetRequestNote(ctx context.Context, requestID, note string) (models.DocumentRequest, error) {
	request, err := s.stores.Requests.FindByID(ctx, requestID)
	if err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document request not found")
	}

	request.Note = note
	request.UpdatedAt = s.today(ctx)
	if err := s.stores.Requests.Save(ctx, request); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "save document request")
	}

	if err := s.logActivity(ctx, request.ClientID, models.ActorFirm, models.KindComment,
		"Document request note updated",
		fmt.Sprintf("Request %s", requestID),
	); err != nil {
		return models.DocumentRequest{}, err
	}
	s.countOp("set_request_note")
	return request, nil
}

// SetRequestAssignee reassigns the request; nil clears the assignee.
// Assignee changes append no activity entry.
func (s *Service) SetRequestAssignee(ctx context.Context, requestID string, assignee *string) (models.DocumentRequest, error) {
	request, err := s.stores.Requests.FindByID(ctx, requestID)
	if err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document request not found")
	}

	if assignee != nil {
		request.Assignee = *assignee
	} else {
		request.Assignee = ""
	}
	request.UpdatedAt = s.today(ctx)
	if err := s.stores.Requests.Save(ctx, request); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "save document request")
	}
	s.countOp("set_request_assignee")
	return request, nil
}

// AddRequestFile records a simulated upload. Receiving a file always forces
// the request to received, so gated deadlines are refreshed as well.
func (s *Service) AddRequestFile(ctx context.Context, requestID string, file models.FileRecord) (models.DocumentRequest, error) {
	if file.Name == "" {
		return models.DocumentRequest{}, dErrors.New(dErrors.CodeInvalidInput, "file name is required")
	}
	if file.By == "" {
		file.By = models.ActorClient
	}
	if !file.By.IsValid() {
		return models.DocumentRequest{}, dErrors.New(dErrors.CodeInvalidInput, "invalid uploader: must be 'client' or 'firm'")
	}
	request, err := s.stores.Requests.FindByID(ctx, requestID)
	if err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeNotFound, "document request not found")
	}

	if file.UploadedAt == "" {
		file.UploadedAt = s.today(ctx)
	}
	request.Files = append([]models.FileRecord{file}, request.Files...)
	request.Status = models.StatusReceived
	request.UpdatedAt = s.today(ctx)
	if err := s.stores.Requests.Save(ctx, request); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "save document request")
	}

	if err := s.logActivity(ctx, request.ClientID, file.By, models.KindUpload,
		fmt.Sprintf("File uploaded: %s", file.Name),
		fmt.Sprintf("%s (%s)", request.Title, request.Period),
	); err != nil {
		return models.DocumentRequest{}, err
	}
	if err := s.recomputeDeadlines(ctx, requestID); err != nil {
		return models.DocumentRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "recompute deadlines")
	}
	s.countOp("add_request_file")
	return request, nil
}

// GenerateChecklist creates document requests from the template catalog for a
// client and period. Templates already represented for that client and period
// are skipped; the generation is still recorded in the activity log even when
// every row was deduplicated away.
func (s *Service) GenerateChecklist(ctx context.Context, clientID string, period models.Period, types []models.RequestType) ([]models.DocumentRequest, error) {
	if !period.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid period: expected YYYY-MM")
	}
	client, err := s.stores.Clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "client not found")
	}

	generated := templates.GenerateRequests(client, period, types, s.today(ctx))

	existing, err := s.stores.Requests.ListByClient(ctx, clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list document requests")
	}
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.DedupeKey()] = struct{}{}
	}

	added := make([]models.DocumentRequest, 0, len(generated))
	for _, r := range generated {
		if _, ok := seen[r.DedupeKey()]; ok {
			continue
		}
		added = append(added, r)
	}
	// The store prepends new requests; insert backwards so the batch keeps
	// catalog order at the head of the list.
	for i := len(added) - 1; i >= 0; i-- {
		if err := s.stores.Requests.Save(ctx, added[i]); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save generated request")
		}
	}

	detail := "All templates"
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		detail = "Types: " + strings.Join(names, ", ")
	}
	if err := s.logActivity(ctx, clientID, models.ActorFirm, models.KindStatus,
		fmt.Sprintf("Generated document checklist (%s)", period),
		detail,
	); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ChecklistGenerated.Add(float64(len(added)))
	}
	s.countOp("generate_checklist")
	s.logger.InfoContext(ctx, "checklist generated",
		"client_id", clientID,
		"period", string(period),
		"added", len(added),
		"skipped", len(generated)-len(added),
	)
	return added, nil
}
