package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/safety-navigator/internal/domain"
)

type MockFeatureProvider struct {
	mock.Mock
}

func (m *MockFeatureProvider) Query(ctx context.Context, center domain.Coordinate, radius float64, taxonomy []domain.TagRule) ([]domain.MapFeature, error) {
	args := m.Called(ctx, center, radius, taxonomy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MapFeature), args.Error(1)
}

type MockGPSRepository struct {
	mock.Mock
}

func (m *MockGPSRepository) Save(ctx context.Context, fix *domain.GPSFix) error {
	args := m.Called(ctx, fix)
	return args.Error(0)
}

func (m *MockGPSRepository) Latest(ctx context.Context, deviceID string) (*domain.GPSFix, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GPSFix), args.Error(1)
}

func (m *MockGPSRepository) History(ctx context.Context, deviceID string, sources []domain.GPSSource, limit int) ([]*domain.GPSFix, error) {
	args := m.Called(ctx, deviceID, sources, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GPSFix), args.Error(1)
}

func (m *MockGPSRepository) DeleteOlderThan(ctx context.Context, deviceID string, source domain.GPSSource, before time.Time) (int64, error) {
	args := m.Called(ctx, deviceID, source, before)
	return args.Get(0).(int64), args.Error(1)
}

// manualClock - часы, которые двигаются только вручную
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func newManualClock(t time.Time) *manualClock {
	return &manualClock{t: t}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingAnnouncer запоминает все поставленные в очередь сообщения
type recordingAnnouncer struct {
	mu    sync.Mutex
	items []recordedAnnouncement
}

type recordedAnnouncement struct {
	DeviceID     string
	Announcement domain.Announcement
}

func (r *recordingAnnouncer) Enqueue(deviceID string, items ...domain.Announcement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range items {
		r.items = append(r.items, recordedAnnouncement{DeviceID: deviceID, Announcement: a})
	}
}

func (r *recordingAnnouncer) All() []recordedAnnouncement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recordedAnnouncement, len(r.items))
	copy(out, r.items)
	return out
}

func (r *recordingAnnouncer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
