package service

import (
	"context"

	"portal/internal/portal/models"
	dErrors "portal/pkg/domain-errors"
)

// ClientPatch is a partial update; nil fields stay unchanged. Contacts and
// Risks replace the whole list when non-nil.
type ClientPatch struct {
	Name           *string              `json:"name,omitempty"`
	RegistrationNo *string              `json:"registrationNo,omitempty"`
	PracticeArea   *models.PracticeArea `json:"practiceArea,omitempty"`
	CaseNumber     *string              `json:"caseNumber,omitempty"`
	LeadCounsel    *string              `json:"leadCounsel,omitempty"`
	Contacts       []models.Contact     `json:"contacts,omitempty"`
	Risks          []models.Risk        `json:"risks,omitempty"`
}

// UpdateClient merges the patch into the stored client. Client edits are
// bookkeeping, not case events, so no activity entry is appended.
func (s *Service) UpdateClient(ctx context.Context, clientID string, patch ClientPatch) (models.Client, error) {
	client, err := s.stores.Clients.FindByID(ctx, clientID)
	if err != nil {
		return models.Client{}, dErrors.Wrap(err, dErrors.CodeNotFound, "client not found")
	}

	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.RegistrationNo != nil {
		client.RegistrationNo = *patch.RegistrationNo
	}
	if patch.PracticeArea != nil {
		if !patch.PracticeArea.IsValid() {
			return models.Client{}, dErrors.New(dErrors.CodeInvalidInput, "invalid practice area")
		}
		client.PracticeArea = *patch.PracticeArea
	}
	if patch.CaseNumber != nil {
		client.CaseNumber = *patch.CaseNumber
	}
	if patch.LeadCounsel != nil {
		client.LeadCounsel = *patch.LeadCounsel
	}
	if patch.Contacts != nil {
		client.Contacts = patch.Contacts
	}
	if patch.Risks != nil {
		client.Risks = patch.Risks
	}

	if err := s.stores.Clients.Save(ctx, client); err != nil {
		return models.Client{}, dErrors.Wrap(err, dErrors.CodeInternal, "save client")
	}
	s.countOp("update_client")
	return client, nil
}
