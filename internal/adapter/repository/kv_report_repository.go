package repository

import (
	"context"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/repository"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type kvReportRepository struct {
	store kvstore.Store
}

func NewKVReportRepository(store kvstore.Store) repository.ReportRepository {
	return &kvReportRepository{
		store: store,
	}
}

func (r *kvReportRepository) Create(ctx context.Context, report *entity.Report) error {
	if err := r.store.Set(ctx, kvstore.ReportKey(report.ID), report); err != nil {
		return errors.Internal("Failed to create report", err)
	}
	return nil
}

func (r *kvReportRepository) List(ctx context.Context) ([]*entity.Report, error) {
	reports, err := kvstore.ScanPrimary[entity.Report](ctx, r.store, kvstore.PrefixReports)
	if err != nil {
		return nil, errors.Internal("Failed to list reports", err)
	}
	return reports, nil
}

func (r *kvReportRepository) Update(ctx context.Context, id string, fn func(*entity.Report) error) (*entity.Report, error) {
	return updateRecord(ctx, r.store, kvstore.ReportKey(id), "Report", fn)
}
