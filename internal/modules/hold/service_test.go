package hold

import (
	"context"
	"testing"
	"time"

	"eventrent/internal/domain"
	"eventrent/internal/modules/availability"
	"eventrent/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHoldRepository struct {
	mock.Mock
}

func (m *MockHoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

func (m *MockHoldRepository) Create(ctx context.Context, h *domain.Hold) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHoldRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hold), args.Error(1)
}

func (m *MockHoldRepository) Consume(ctx context.Context, holdID, reservationID string, now time.Time) (bool, error) {
	args := m.Called(ctx, holdID, reservationID, now)
	return args.Bool(0), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) IsAvailable(ctx context.Context, packKey domain.PackKey, interval domain.TimeInterval, excludeHoldID string) (*availability.Result, error) {
	args := m.Called(ctx, packKey, interval, excludeHoldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Result), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyHoldCreated(ctx context.Context, holdID string, packKey domain.PackKey, startAt time.Time) error {
	args := m.Called(ctx, holdID, packKey, startAt)
	return args.Error(0)
}

var testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

func validRequest() CreateHoldRequest {
	return CreateHoldRequest{
		PackKey:   "conference",
		StartAt:   "2026-01-10",
		EndAt:     "2026-01-10",
		StartTime: "09:00",
		EndTime:   "13:00",
		Source:    "web",
	}
}

func TestCreateHold_Success(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)
	mockNotifs := new(MockNotificationSender)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").Return(&availability.Result{Available: true, Remaining: 1}, nil)
	mockHolds.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyHoldCreated", mock.Anything, mock.Anything, domain.PackConference, mock.Anything).Return(nil)

	service := NewService(mockHolds, mockChecker, mockNotifs, clock.NewFixed(testNow))

	h, err := service.CreateHold(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	assert.Equal(t, domain.HoldActive, h.Status)
	assert.Equal(t, testNow.Add(10*time.Minute), h.ExpiresAt)
	mockNotifs.AssertExpectations(t)
}

func TestCreateHold_SlotTaken(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").Return(&availability.Result{
		Available:         false,
		ConflictingHoldID: "other-hold",
	}, nil)

	service := NewService(mockHolds, mockChecker, nil, clock.NewFixed(testNow))

	_, err := service.CreateHold(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
	mockHolds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Two overlapping requests serialize on the pack row inside their insert
// transactions: the second runs its re-check only after the first commit,
// sees the new hold, and is refused. Exactly one insert happens.
func TestCreateHold_OverlappingRequestsExactlyOneSucceeds(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").
		Return(&availability.Result{Available: true, Remaining: 1}, nil).Once()
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").
		Return(&availability.Result{Available: false, ConflictingHoldID: "first-hold"}, nil).Once()
	mockHolds.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	service := NewService(mockHolds, mockChecker, nil, clock.NewFixed(testNow))

	first, err := service.CreateHold(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = service.CreateHold(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)

	mockHolds.AssertNumberOfCalls(t, "Create", 1)
}

// A unique or exclusion violation raised by the store on insert surfaces
// as the same slot-taken conflict the re-check produces.
func TestCreateHold_StoreConflictMapsToSlotTaken(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)
	mockNotifs := new(MockNotificationSender)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").
		Return(&availability.Result{Available: true, Remaining: 1}, nil)
	mockHolds.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "holds_pkey"})

	service := NewService(mockHolds, mockChecker, mockNotifs, clock.NewFixed(testNow))

	_, err := service.CreateHold(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
	mockNotifs.AssertNotCalled(t, "NotifyHoldCreated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateHold_InvalidInterval(t *testing.T) {
	service := NewService(new(MockHoldRepository), new(MockChecker), nil, clock.NewFixed(testNow))

	req := validRequest()
	req.StartAt = "2026-01-12"
	req.EndAt = "2026-01-10"

	_, err := service.CreateHold(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateHold_BadDateFormat(t *testing.T) {
	service := NewService(new(MockHoldRepository), new(MockChecker), nil, clock.NewFixed(testNow))

	req := validRequest()
	req.StartAt = "10/01/2026"

	_, err := service.CreateHold(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateHold_UnknownPack(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, mock.Anything, mock.Anything, "").Return(nil, availability.ErrUnknownPack)

	service := NewService(mockHolds, mockChecker, nil, clock.NewFixed(testNow))

	_, err := service.CreateHold(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnknownPack)
}

func TestCreateHold_CustomTTL(t *testing.T) {
	mockHolds := new(MockHoldRepository)
	mockChecker := new(MockChecker)

	mockHolds.On("WithTx", mock.Anything).Return(nil)
	mockChecker.On("IsAvailable", mock.Anything, domain.PackConference, mock.Anything, "").Return(&availability.Result{Available: true}, nil)
	mockHolds.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockHolds, mockChecker, nil, clock.NewFixed(testNow), WithTTL(3*time.Minute))

	h, err := service.CreateHold(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, testNow.Add(3*time.Minute), h.ExpiresAt)
}

func TestConsumeHold_Success(t *testing.T) {
	mockHolds := new(MockHoldRepository)

	reservationID := "res-42"
	mockHolds.On("Consume", mock.Anything, "hold-1", reservationID, testNow).Return(true, nil)
	mockHolds.On("GetByID", mock.Anything, "hold-1").Return(&domain.Hold{
		ID:            "hold-1",
		Status:        domain.HoldConsumed,
		ReservationID: &reservationID,
	}, nil)

	service := NewService(mockHolds, new(MockChecker), nil, clock.NewFixed(testNow))

	h, consumed, err := service.ConsumeHold(context.Background(), "hold-1", reservationID)

	assert.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, domain.HoldConsumed, h.Status)
}

func TestConsumeHold_AlreadyLapsedIsNonFatal(t *testing.T) {
	mockHolds := new(MockHoldRepository)

	mockHolds.On("Consume", mock.Anything, "hold-1", "res-42", testNow).Return(false, nil)
	mockHolds.On("GetByID", mock.Anything, "hold-1").Return(&domain.Hold{
		ID:     "hold-1",
		Status: domain.HoldExpired,
	}, nil)

	service := NewService(mockHolds, new(MockChecker), nil, clock.NewFixed(testNow))

	h, consumed, err := service.ConsumeHold(context.Background(), "hold-1", "res-42")

	assert.NoError(t, err, "a lapsed hold must not fail reservation creation")
	assert.False(t, consumed)
	assert.NotNil(t, h)
}
