package repository

import (
	"context"

	"localmarket/internal/domain/entity"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	List(ctx context.Context) ([]*entity.Report, error)
	Update(ctx context.Context, id string, fn func(*entity.Report) error) (*entity.Report, error)
}
