package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/domain/repository"
)

type AnalyticsUseCase struct {
	userRepo         repository.UserRepository
	listingRepo      repository.ListingRepository
	orderRepo        repository.OrderRepository
	reportRepo       repository.ReportRepository
	verificationRepo repository.VerificationRepository
}

func NewAnalyticsUseCase(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	orderRepo repository.OrderRepository,
	reportRepo repository.ReportRepository,
	verificationRepo repository.VerificationRepository,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		userRepo:         userRepo,
		listingRepo:      listingRepo,
		orderRepo:        orderRepo,
		reportRepo:       reportRepo,
		verificationRepo: verificationRepo,
	}
}

// Analytics is the admin dashboard summary. Revenue is in major units and
// counts paid and delivered orders only.
type Analytics struct {
	TotalUsers           int     `json:"totalUsers"`
	TotalListings        int     `json:"totalListings"`
	TotalOrders          int     `json:"totalOrders"`
	TotalRevenue         float64 `json:"totalRevenue"`
	PendingReports       int     `json:"pendingReports"`
	PendingVerifications int     `json:"pendingVerifications"`
}

func (uc *AnalyticsUseCase) Summary(ctx context.Context, actor policy.Actor) (*Analytics, error) {
	if err := policy.Authorize(actor, policy.ViewAnalytics, nil); err != nil {
		return nil, err
	}

	var (
		users    []*entity.User
		listings []*entity.Listing
		orders   []*entity.Order
		reports  []*entity.Report
		reqs     []*entity.VerificationRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { users, err = uc.userRepo.List(gctx); return })
	g.Go(func() (err error) { listings, err = uc.listingRepo.List(gctx); return })
	g.Go(func() (err error) { orders, err = uc.orderRepo.List(gctx); return })
	g.Go(func() (err error) { reports, err = uc.reportRepo.List(gctx); return })
	g.Go(func() (err error) { reqs, err = uc.verificationRepo.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a := &Analytics{
		TotalUsers:    len(users),
		TotalListings: len(listings),
		TotalOrders:   len(orders),
	}

	var revenueCents int64
	for _, o := range orders {
		if o.CountsAsRevenue() {
			revenueCents += o.TotalCents
		}
	}
	a.TotalRevenue = entity.FromCents(revenueCents)

	for _, r := range reports {
		if r.Status == entity.ReportStatusPending {
			a.PendingReports++
		}
	}
	for _, r := range reqs {
		if r.Status == entity.VerificationPending {
			a.PendingVerifications++
		}
	}
	return a, nil
}
