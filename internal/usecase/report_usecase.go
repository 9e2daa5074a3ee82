package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
	"localmarket/pkg/errors"
)

type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
	}
}

type CreateReportInput struct {
	TargetType string
	TargetID   string
	Reason     string
}

func (uc *ReportUseCase) Create(ctx context.Context, actor policy.Actor, input CreateReportInput) (*entity.Report, error) {
	if err := policy.Authorize(actor, policy.FileReport, nil); err != nil {
		return nil, err
	}

	report := &entity.Report{
		ID:         uuid.New().String(),
		ReporterID: actor.UserID,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		Reason:     input.Reason,
		Status:     entity.ReportStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// List returns the moderation queue, newest first. An empty status returns
// every report.
func (uc *ReportUseCase) List(ctx context.Context, actor policy.Actor, status string) ([]*entity.Report, error) {
	if err := policy.Authorize(actor, policy.ModerateReports, nil); err != nil {
		return nil, err
	}

	reports, err := uc.reportRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" {
		filtered := reports[:0]
		for _, r := range reports {
			if r.Status == status {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}
	sortByNewest(reports, func(r *entity.Report) time.Time { return r.CreatedAt })
	return reports, nil
}

func (uc *ReportUseCase) MarkReviewed(ctx context.Context, actor policy.Actor, id string) (*entity.Report, error) {
	if err := policy.Authorize(actor, policy.ModerateReports, nil); err != nil {
		return nil, err
	}

	return uc.reportRepo.Update(ctx, id, func(r *entity.Report) error {
		if r.Status != entity.ReportStatusPending {
			return errors.BadRequest("Report has already been reviewed", nil)
		}
		r.Status = entity.ReportStatusReviewed
		return nil
	})
}
