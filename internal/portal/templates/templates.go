// Package templates holds the document-template catalog and the pure
// checklist synthesis it drives. Inserting the synthesized rows (and
// deduplicating them against existing requests) is the service's job.
package templates

import (
	"fmt"
	"time"

	"portal/internal/portal/models"
)

// Template describes one generatable document request. Title and DueDate are
// functions of the period so catalogs can phrase and schedule rows per month.
type Template struct {
	Key         string
	Type        models.RequestType
	Title       func(models.Period) string
	DueDate     func(models.Period) string
	DefaultNote string
	// OnlyIf restricts the template to eligible clients; nil means always.
	OnlyIf func(models.Client) bool
}

// Catalog returns the firm's standard document templates.
func Catalog() []Template {
	return []Template{
		{
			Key:         "power-of-attorney",
			Type:        models.TypePowerOfAttorney,
			Title:       constant("Power of attorney for representation"),
			DueDate:     dueNextMonth(10),
			DefaultNote: "Signed power of attorney with a certified signature.",
		},
		{
			Key:         "contract-review",
			Type:        models.TypeContract,
			Title:       constant("Contract for review"),
			DueDate:     dueNextMonth(15),
			DefaultNote: "Current contract version as DOCX or PDF.",
		},
		{
			Key:         "case-records",
			Type:        models.TypeRecords,
			Title:       constant("Case records"),
			DueDate:     dueNextMonth(8),
			DefaultNote: "All correspondence, contracts and invoices.",
		},
		{
			Key:         "evidence",
			Type:        models.TypeEvidence,
			Title:       constant("Evidence bundle"),
			DueDate:     dueNextMonth(12),
			DefaultNote: "Photos, videos, witness statements, expert reports.",
		},
		{
			Key:         "court-filing",
			Type:        models.TypeCourt,
			Title:       constant("Court filing attachments"),
			DueDate:     dueNextMonth(5),
			DefaultNote: "Attachments referenced by the pending filing.",
			OnlyIf:      func(c models.Client) bool { return c.CaseNumber != "" },
		},
	}
}

// GenerateRequests synthesizes document requests for a client and period from
// the catalog. Types filters the catalog when non-empty; templates whose
// OnlyIf predicate rejects the client are skipped. IDs are deterministic over
// (client, period, template key, index) so repeated generation is stable.
func GenerateRequests(client models.Client, period models.Period, types []models.RequestType, asOf string) []models.DocumentRequest {
	wanted := make(map[models.RequestType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}

	var out []models.DocumentRequest
	idx := 0
	for _, tpl := range Catalog() {
		if len(wanted) > 0 {
			if _, ok := wanted[tpl.Type]; !ok {
				continue
			}
		}
		if tpl.OnlyIf != nil && !tpl.OnlyIf(client) {
			continue
		}

		out = append(out, models.DocumentRequest{
			ID:          fmt.Sprintf("rq-gen-%s-%s-%s-%d", client.ID, period, tpl.Key, idx),
			ClientID:    client.ID,
			Period:      period,
			Type:        tpl.Type,
			Title:       tpl.Title(period),
			TemplateKey: tpl.Key,
			DueDate:     tpl.DueDate(period),
			Status:      models.StatusMissing,
			Note:        tpl.DefaultNote,
			Assignee:    client.LeadCounsel,
			UpdatedAt:   asOf,
			Files:       []models.FileRecord{},
		})
		idx++
	}
	return out
}

func constant(title string) func(models.Period) string {
	return func(models.Period) string { return title }
}

// dueNextMonth schedules the given day of the month following the period.
// Documents for January are due in February, and so on.
func dueNextMonth(day int) func(models.Period) string {
	return func(p models.Period) string {
		t, err := time.Parse("2006-01", string(p))
		if err != nil {
			return ""
		}
		due := time.Date(t.Year(), t.Month()+1, day, 0, 0, 0, 0, time.UTC)
		return models.DateOnly(due)
	}
}
