package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"localmarket/internal/adapter/repository"
	"localmarket/internal/domain/entity"
	"localmarket/internal/domain/policy"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

type fakeIdentity struct {
	mu     sync.Mutex
	next   int
	emails map[string]string
	down   error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{emails: make(map[string]string)}
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down != nil {
		return "", f.down
	}
	if _, ok := f.emails[email]; ok {
		return "", errors.BadRequest("email already exists", nil)
	}
	f.next++
	uid := fmt.Sprintf("uid-%d", f.next)
	f.emails[email] = uid
	return uid, nil
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, uid := range f.emails {
		if uid == token {
			return uid, nil
		}
	}
	return "", stderrors.New("invalid token")
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event entity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeImages struct {
	folder string
}

func (f *fakeImages) UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	f.folder = folder
	return "https://storage.googleapis.com/test-bucket/" + folder + "/img.jpg", nil
}

// market wires every use case over one in-memory store.
type market struct {
	store     *kvstore.MemoryStore
	publisher *recordingPublisher
	identity  *fakeIdentity

	auth          *AuthUseCase
	users         *UserUseCase
	sellers       *SellerUseCase
	listings      *ListingUseCase
	orders        *OrderUseCase
	reviews       *ReviewUseCase
	reports       *ReportUseCase
	verifications *VerificationUseCase
	analytics     *AnalyticsUseCase
}

func newMarket(t *testing.T) *market {
	t.Helper()

	store := kvstore.NewMemoryStore()
	pub := &recordingPublisher{}
	identity := newFakeIdentity()

	userRepo := repository.NewKVUserRepository(store)
	sellerRepo := repository.NewKVSellerRepository(store)
	listingRepo := repository.NewKVListingRepository(store)
	orderRepo := repository.NewKVOrderRepository(store)
	reviewRepo := repository.NewKVReviewRepository(store)
	reportRepo := repository.NewKVReportRepository(store)
	verificationRepo := repository.NewKVVerificationRepository(store)

	return &market{
		store:         store,
		publisher:     pub,
		identity:      identity,
		auth:          NewAuthUseCase(userRepo, identity, []string{"admin@market.test"}),
		users:         NewUserUseCase(userRepo),
		sellers:       NewSellerUseCase(sellerRepo, userRepo),
		listings:      NewListingUseCase(listingRepo, userRepo, sellerRepo, pub, "ZAR"),
		orders:        NewOrderUseCase(orderRepo, listingRepo, userRepo, pub),
		reviews:       NewReviewUseCase(reviewRepo, orderRepo, userRepo, pub),
		reports:       NewReportUseCase(reportRepo),
		verifications: NewVerificationUseCase(verificationRepo, listingRepo, sellerRepo, pub),
		analytics:     NewAnalyticsUseCase(userRepo, listingRepo, orderRepo, reportRepo, verificationRepo),
	}
}

func (m *market) signup(t *testing.T, email, role string) policy.Actor {
	t.Helper()
	u, err := m.auth.Signup(context.Background(), SignupInput{
		Email:    email,
		Password: "secret123",
		Name:     email,
		Role:     role,
	})
	require.NoError(t, err)
	return policy.Actor{UserID: u.ID, Role: u.Role}
}

func (m *market) admin(t *testing.T) policy.Actor {
	return m.signup(t, "admin@market.test", "")
}

func (m *market) listing(t *testing.T, seller policy.Actor, title, category string, price float64, qty int, createdAt time.Time) *entity.Listing {
	t.Helper()
	l, err := m.listings.Create(context.Background(), seller, CreateListingInput{
		Title:    title,
		Category: category,
		Price:    price,
		Quantity: qty,
	})
	require.NoError(t, err)
	if !createdAt.IsZero() {
		l.CreatedAt = createdAt
		require.NoError(t, m.store.Set(context.Background(), kvstore.ListingKey(l.ID), l))
	}
	return l
}

func ptr[T any](v T) *T { return &v }
