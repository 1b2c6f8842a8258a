package availability

import (
	"context"
	"testing"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepository struct {
	mock.Mock
}

func (m *MockHoldRepository) FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate, now time.Time, excludeID string) ([]domain.Hold, error) {
	args := m.Called(ctx, packKey, startDate, endDate, now, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hold), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindBlocking(ctx context.Context, packKey domain.PackKey, startDate, endDate time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, packKey, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

type MockPackRepository struct {
	mock.Mock
}

func (m *MockPackRepository) GetByKeyForUpdate(ctx context.Context, key domain.PackKey) (*domain.Pack, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pack), args.Error(1)
}

var testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func testPack() *domain.Pack {
	return &domain.Pack{
		Key:           domain.PackParty,
		BasePrice:     decimal.RequireFromString("300.00"),
		TotalQuantity: 2,
	}
}

func dayInterval(d int) domain.TimeInterval {
	dt := time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	return domain.TimeInterval{StartAt: dt, EndAt: dt}
}

func newTestService(holds *MockHoldRepository, reservations *MockReservationRepository) *Service {
	packs := new(MockPackRepository)
	packs.On("GetByKeyForUpdate", mock.Anything, domain.PackParty).Return(testPack(), nil)
	return NewService(holds, reservations, packs, clock.NewFixed(testNow))
}

func TestIsAvailable_FreeSlot(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, dayInterval(10), "")

	assert.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 2, result.Remaining)
	assert.Equal(t, 0, result.BookedQuantity)
	assert.Equal(t, 2, result.TotalQuantity)
}

func TestIsAvailable_BlockedByActiveHold(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{
		{ID: "hold-1", PackKey: domain.PackParty, Interval: dayInterval(10), Status: domain.HoldActive, ExpiresAt: testNow.Add(5 * time.Minute)},
	}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, dayInterval(10), "")

	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "hold-1", result.ConflictingHoldID)
}

func TestIsAvailable_ExpiredHoldNeverBlocks(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	// Stored status still ACTIVE but expires_at already passed.
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{
		{ID: "hold-stale", PackKey: domain.PackParty, Interval: dayInterval(10), Status: domain.HoldActive, ExpiresAt: testNow.Add(-time.Minute)},
	}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, dayInterval(10), "")

	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestIsAvailable_BlockedByReservation(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{
		{ID: "res-1", PackKey: domain.PackParty, Interval: dayInterval(10), Status: domain.ReservationAwaitingPayment},
	}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, dayInterval(10), "")

	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "res-1", result.ConflictingReservationID)
	assert.Equal(t, 1, result.Remaining)
}

func TestIsAvailable_CancelledReservationFreesSlot(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{
		{ID: "res-1", PackKey: domain.PackParty, Interval: dayInterval(10), Status: domain.ReservationCancelled},
	}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, dayInterval(10), "")

	assert.NoError(t, err)
	assert.True(t, result.Available)
}

func TestIsAvailable_TimeOfDayRefinement(t *testing.T) {
	morningFrom, morningTo := "09:00", "13:00"
	afternoonFrom, afternoonTo := "13:00", "17:00"

	held := dayInterval(10)
	held.StartTime, held.EndTime = &morningFrom, &morningTo

	candidate := dayInterval(10)
	candidate.StartTime, candidate.EndTime = &afternoonFrom, &afternoonTo

	mockHolds := new(MockHoldRepository)
	mockReservations := new(MockReservationRepository)
	mockHolds.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything, testNow, "").Return([]domain.Hold{
		{ID: "hold-morning", PackKey: domain.PackParty, Interval: held, Status: domain.HoldActive, ExpiresAt: testNow.Add(5 * time.Minute)},
	}, nil)
	mockReservations.On("FindBlocking", mock.Anything, domain.PackParty, mock.Anything, mock.Anything).Return([]domain.Reservation{}, nil)

	service := newTestService(mockHolds, mockReservations)

	result, err := service.IsAvailable(context.Background(), domain.PackParty, candidate, "")

	assert.NoError(t, err)
	assert.True(t, result.Available, "back-to-back same-day slots must not conflict")
}

func TestIsAvailable_InvalidInterval(t *testing.T) {
	service := newTestService(new(MockHoldRepository), new(MockReservationRepository))

	iv := domain.TimeInterval{
		StartAt: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	_, err := service.IsAvailable(context.Background(), domain.PackParty, iv, "")
	assert.ErrorIs(t, err, ErrValidation)
}
