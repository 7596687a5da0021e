package store

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"portal/internal/portal/models"
	"portal/pkg/email"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtures struct {
	Clients    []models.Client          `yaml:"clients"`
	Requests   []models.DocumentRequest `yaml:"requests"`
	Deadlines  []models.Deadline        `yaml:"deadlines"`
	Reports    []models.ReportItem      `yaml:"reports"`
	Activities []models.Activity        `yaml:"activities"`
}

// SeedDemoData loads the embedded demo fixtures into the stores. Every client
// gets a default reminder rule, and contacts without a display name get one
// derived from their email address.
func SeedDemoData(ctx context.Context, st Stores) error {
	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		return fmt.Errorf("parse seed fixtures: %w", err)
	}

	for _, c := range fx.Clients {
		for i, contact := range c.Contacts {
			if contact.Name == "" {
				c.Contacts[i].Name = contactName(contact.Email)
			}
		}
		if err := st.Clients.Save(ctx, c); err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
		if err := st.Rules.Save(ctx, models.DefaultReminderRule(c.ID)); err != nil {
			return fmt.Errorf("seed reminder rule for %s: %w", c.ID, err)
		}
	}

	// Requests prepend on insert; walk the fixtures backwards so the store
	// ends up in fixture order.
	for i := len(fx.Requests) - 1; i >= 0; i-- {
		if err := st.Requests.Save(ctx, fx.Requests[i]); err != nil {
			return fmt.Errorf("seed request %s: %w", fx.Requests[i].ID, err)
		}
	}

	for _, d := range fx.Deadlines {
		if err := st.Deadlines.Save(ctx, d); err != nil {
			return fmt.Errorf("seed deadline %s: %w", d.ID, err)
		}
	}

	for _, r := range fx.Reports {
		if err := st.Reports.Save(ctx, r); err != nil {
			return fmt.Errorf("seed report %s: %w", r.ID, err)
		}
	}

	// Fixtures list activities newest first; the store prepends, so append
	// oldest first to preserve the order.
	for i := len(fx.Activities) - 1; i >= 0; i-- {
		if err := st.Activities.Append(ctx, fx.Activities[i]); err != nil {
			return fmt.Errorf("seed activity %s: %w", fx.Activities[i].ID, err)
		}
	}

	return nil
}

func contactName(address string) string {
	first, last := email.DeriveNameFromEmail(address)
	if last == "Contact" {
		return first
	}
	return strings.TrimSpace(first + " " + last)
}
