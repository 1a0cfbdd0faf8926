package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
	"github.com/impulse-lab/lab-booking-service/internal/events"
	"github.com/impulse-lab/lab-booking-service/internal/provider"
	"github.com/impulse-lab/lab-booking-service/internal/repository"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockServiceRepo struct{ mock.Mock }

func (m *mockServiceRepo) Create(ctx context.Context, svc *domain.Service) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *mockServiceRepo) Update(ctx context.Context, svc *domain.Service) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	svc, _ := args.Get(0).(*domain.Service)
	return svc, args.Error(1)
}

func (m *mockServiceRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	services, _ := args.Get(0).([]domain.Service)
	return services, args.Error(1)
}

func (m *mockServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]domain.Service)
	return services, args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*domain.Booking, error) {
	args := m.Called(ctx, providerPaymentID)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) Stats(ctx context.Context) (*repository.BookingStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*repository.BookingStats)
	return stats, args.Error(1)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) Create(ctx context.Context, report *domain.Report) error {
	return m.Called(ctx, report).Error(0)
}

func (m *mockReportRepo) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	args := m.Called(ctx, id)
	report, _ := args.Get(0).(*domain.Report)
	return report, args.Error(1)
}

func (m *mockReportRepo) ListByBooking(ctx context.Context, bookingID string) ([]domain.Report, error) {
	args := m.Called(ctx, bookingID)
	reports, _ := args.Get(0).([]domain.Report)
	return reports, args.Error(1)
}

func (m *mockReportRepo) ListAll(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	reports, _ := args.Get(0).([]domain.Report)
	return reports, args.Error(1)
}

func (m *mockReportRepo) ListByBookingOwner(ctx context.Context, userID string) ([]domain.Report, error) {
	args := m.Called(ctx, userID)
	reports, _ := args.Get(0).([]domain.Report)
	return reports, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type mockGoogleExchanger struct{ mock.Mock }

func (m *mockGoogleExchanger) Exchange(ctx context.Context, code string) (*provider.GoogleIdentity, error) {
	args := m.Called(ctx, code)
	identity, _ := args.Get(0).(*provider.GoogleIdentity)
	return identity, args.Error(1)
}

type mockStripeCheckout struct{ mock.Mock }

func (m *mockStripeCheckout) CreateCheckoutSession(ctx context.Context, booking *domain.Booking) (string, string, error) {
	args := m.Called(ctx, booking)
	return args.String(0), args.String(1), args.Error(2)
}

type mockRazorpayOrders struct{ mock.Mock }

func (m *mockRazorpayOrders) CreateOrder(ctx context.Context, amount int64, currency string) (*provider.RazorpayOrder, error) {
	args := m.Called(ctx, amount, currency)
	order, _ := args.Get(0).(*provider.RazorpayOrder)
	return order, args.Error(1)
}

// recordingDispatcher collects published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) eventTypes() []events.EventType {
	types := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		types = append(types, e.Type)
	}
	return types
}
