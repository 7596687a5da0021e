package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/portal/models"
)

const asOf = "2026-02-04"

func litigationClient() models.Client {
	return models.Client{
		ID:           "cl-001",
		Name:         "TECHSTART Ltd.",
		PracticeArea: models.AreaCommercial,
		CaseNumber:   "2024/COM/142",
		LeadCounsel:  "J. Novak",
	}
}

func TestGenerateRequestsAllTemplates(t *testing.T) {
	got := GenerateRequests(litigationClient(), "2026-01", nil, asOf)

	require.Len(t, got, len(Catalog()))
	for _, r := range got {
		assert.Equal(t, "cl-001", r.ClientID)
		assert.Equal(t, models.Period("2026-01"), r.Period)
		assert.Equal(t, models.StatusMissing, r.Status)
		assert.Equal(t, "J. Novak", r.Assignee)
		assert.Equal(t, asOf, r.UpdatedAt)
		assert.Empty(t, r.Files)
		assert.NotEmpty(t, r.TemplateKey)
	}
}

func TestGenerateRequestsFiltersByType(t *testing.T) {
	got := GenerateRequests(litigationClient(), "2026-02", []models.RequestType{models.TypeEvidence}, asOf)

	require.Len(t, got, 1)
	assert.Equal(t, models.TypeEvidence, got[0].Type)
	assert.Equal(t, "evidence", got[0].TemplateKey)
}

func TestGenerateRequestsSkipsIneligibleClients(t *testing.T) {
	advisory := litigationClient()
	advisory.CaseNumber = "" // no pending proceedings

	got := GenerateRequests(advisory, "2026-02", nil, asOf)

	for _, r := range got {
		assert.NotEqual(t, models.TypeCourt, r.Type, "court-filing template requires a case number")
	}
	assert.Len(t, got, len(Catalog())-1)
}

func TestGenerateRequestsDeterministicIDs(t *testing.T) {
	first := GenerateRequests(litigationClient(), "2026-01", nil, asOf)
	second := GenerateRequests(litigationClient(), "2026-01", nil, asOf)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "rq-gen-cl-001-2026-01-power-of-attorney-0", first[0].ID)
}

func TestDueDatesFallInTheFollowingMonth(t *testing.T) {
	got := GenerateRequests(litigationClient(), "2026-01", []models.RequestType{models.TypeContract}, asOf)

	require.Len(t, got, 1)
	assert.Equal(t, "2026-02-15", got[0].DueDate)

	got = GenerateRequests(litigationClient(), "2026-02", []models.RequestType{models.TypeContract}, asOf)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-15", got[0].DueDate)
}

func TestDueDateRollsOverYearEnd(t *testing.T) {
	got := GenerateRequests(litigationClient(), "2026-12", []models.RequestType{models.TypeRecords}, asOf)

	require.Len(t, got, 1)
	assert.Equal(t, "2027-01-08", got[0].DueDate)
}
