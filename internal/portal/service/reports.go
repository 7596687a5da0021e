package service

import (
	"context"
	"fmt"

	"portal/internal/portal/models"
	dErrors "portal/pkg/domain-errors"
	"portal/pkg/requestcontext"
)

// PublishReport stamps the report as published at the current instant.
// Publishing is idempotent: republishing overwrites the timestamp and logs
// again, it never errors.
func (s *Service) PublishReport(ctx context.Context, reportID string) (models.ReportItem, error) {
	report, err := s.stores.Reports.FindByID(ctx, reportID)
	if err != nil {
		return models.ReportItem{}, dErrors.Wrap(err, dErrors.CodeNotFound, "report not found")
	}

	now := requestcontext.Now(ctx)
	report.PublishedAt = &now
	if err := s.stores.Reports.Save(ctx, report); err != nil {
		return models.ReportItem{}, dErrors.Wrap(err, dErrors.CodeInternal, "save report")
	}

	if err := s.logActivity(ctx, report.ClientID, models.ActorFirm, models.KindStatus,
		fmt.Sprintf("Report published: %s", report.Title),
		fmt.Sprintf("Period %s", report.Period),
	); err != nil {
		return models.ReportItem{}, err
	}
	s.countOp("publish_report")
	return report, nil
}
