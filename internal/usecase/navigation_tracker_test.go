package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	apperrors "github.com/safety-navigator/internal/pkg/errors"
)

var (
	ferryBuilding = domain.Target{
		Name:       "Ferry Building",
		Coordinate: domain.Coordinate{Latitude: 37.7849, Longitude: -122.4094},
	}
	cityHall  = domain.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	halfway   = domain.Coordinate{Latitude: 37.7759, Longitude: -122.4184}
	awaySouth = domain.Coordinate{Latitude: 37.7649, Longitude: -122.4294}
)

func newTestTracker(t *testing.T) (*NavigationTracker, *recordingAnnouncer, *manualClock) {
	t.Helper()
	announcer := &recordingAnnouncer{}
	clock := newManualClock(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC))
	tracker := NewNavigationTracker(announcer, clock, domain.NavigationThresholds{}, zap.NewNop())
	return tracker, announcer, clock
}

func TestNavigationTracker_Start(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	session, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)

	distanceMeters := session.LastDistanceKm * 1000
	assert.GreaterOrEqual(t, distanceMeters, 1400.0)
	assert.LessOrEqual(t, distanceMeters, 1500.0)
	assert.True(t, session.IsActive)
	assert.False(t, session.HasArrived)
	assert.Equal(t, clock.Now(), session.StartTime)
	assert.Equal(t, clock.Now(), session.LastAnnouncementTime)
	assert.Equal(t, cityHall, session.StartLocation)
	assert.Equal(t, cityHall, session.LastLocation)
	assert.Zero(t, session.TotalDistanceTraveledKm)

	items := announcer.All()
	require.Len(t, items, 1)
	assert.Equal(t, "D1", items[0].DeviceID)
	assert.Equal(t, domain.CategoryInfo, items[0].Announcement.Category)
	assert.Equal(t, "Navigation started to Ferry Building. Distance: 1417 meters.", items[0].Announcement.Text)
	assert.Zero(t, items[0].Announcement.Delay)

	status := tracker.Status()
	assert.Equal(t, 1, status.ActiveCount)
	require.Len(t, status.Navigations, 1)
	assert.Equal(t, "Ferry Building", status.Navigations[0].Target)
}

func TestNavigationTracker_Start_Validation(t *testing.T) {
	tracker, announcer, _ := newTestTracker(t)

	_, err := tracker.Start(" ", ferryBuilding, cityHall)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDeviceID)

	_, err = tracker.Start("D1", domain.Target{Coordinate: ferryBuilding.Coordinate}, cityHall)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)

	_, err = tracker.Start("D1", domain.Target{Name: "Nowhere", Coordinate: domain.Coordinate{Latitude: 95}}, cityHall)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)

	_, err = tracker.Start("D1", ferryBuilding, domain.Coordinate{Longitude: 200})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)

	assert.Empty(t, announcer.All())
	assert.Zero(t, tracker.Status().ActiveCount)
}

func TestNavigationTracker_Arrival(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(12 * time.Minute)
	update, err := tracker.Update("D1", ferryBuilding.Coordinate)
	require.NoError(t, err)
	require.NotNil(t, update)

	assert.Equal(t, domain.NavigationStatusArrived, update.Status)
	assert.Zero(t, update.CurrentDistanceMeters)
	assert.InDelta(t, 1417, update.DistanceChangeMeters, 1)
	assert.True(t, update.Session.HasArrived)
	assert.False(t, update.Session.IsActive)

	items := announcer.All()
	require.Len(t, items, 2)
	assert.Equal(t, domain.CategorySuccess, items[0].Announcement.Category)
	assert.Equal(t, "You have reached your destination: Ferry Building. Journey completed in 12 minutes.", items[0].Announcement.Text)
	assert.Equal(t, domain.CueDestinationReached, items[1].Announcement.Cue)
	assert.Equal(t, 2*time.Second, items[1].Announcement.Delay)

	_, ok := tracker.Get("D1")
	assert.False(t, ok)
	assert.Zero(t, tracker.Status().ActiveCount)

	again, err := tracker.Update("D1", ferryBuilding.Coordinate)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, announcer.All(), 2)
}

func TestNavigationTracker_ArrivalThreshold(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)

	// ~22 м от цели
	update, err := tracker.Update("D1", domain.Coordinate{Latitude: 37.7851, Longitude: -122.4094})
	require.NoError(t, err)
	assert.Equal(t, domain.NavigationStatusNavigating, update.Status)

	// ~11 м от цели
	update, err = tracker.Update("D1", domain.Coordinate{Latitude: 37.7850, Longitude: -122.4094})
	require.NoError(t, err)
	assert.Equal(t, domain.NavigationStatusArrived, update.Status)
}

func TestNavigationTracker_UpdateWithoutSession(t *testing.T) {
	tracker, announcer, _ := newTestTracker(t)

	update, err := tracker.Update("ghost", cityHall)
	require.NoError(t, err)
	assert.Nil(t, update)
	assert.Empty(t, announcer.All())

	_, err = tracker.Update("ghost", domain.Coordinate{Latitude: -90.5})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestNavigationTracker_Throttle(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(10 * time.Second)
	update, err := tracker.Update("D1", halfway)
	require.NoError(t, err)
	assert.False(t, update.Announced)
	assert.Empty(t, announcer.All())
	assert.Equal(t, halfway, update.Session.LastLocation)
	assert.InDelta(t, 1275.6, update.CurrentDistanceMeters, 0.5)

	clock.Advance(25 * time.Second)
	closer := domain.Coordinate{Latitude: 37.7769, Longitude: -122.4174}
	update, err = tracker.Update("D1", closer)
	require.NoError(t, err)
	assert.True(t, update.Announced)
	assert.Greater(t, update.DistanceChangeMeters, 10.0)

	items := announcer.All()
	require.Len(t, items, 2)
	assert.Equal(t, domain.CueGettingCloser, items[0].Announcement.Cue)
	assert.Zero(t, items[0].Announcement.Delay)
	assert.Equal(t, domain.CategoryProgress, items[1].Announcement.Category)
	assert.Equal(t, 1500*time.Millisecond, items[1].Announcement.Delay)
	assert.Contains(t, items[1].Announcement.Text, "You are getting closer to your destination.")

	clock.Advance(5 * time.Second)
	evenCloser := domain.Coordinate{Latitude: 37.7779, Longitude: -122.4164}
	update, err = tracker.Update("D1", evenCloser)
	require.NoError(t, err)
	assert.False(t, update.Announced)
	assert.Len(t, announcer.All(), 2)

	session, ok := tracker.Get("D1")
	require.True(t, ok)
	assert.Equal(t, evenCloser, session.LastLocation)
	assert.InDelta(t, update.CurrentDistanceMeters, session.LastDistanceKm*1000, 1e-9)
}

func TestNavigationTracker_MovingAway(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(31 * time.Second)
	update, err := tracker.Update("D1", awaySouth)
	require.NoError(t, err)
	assert.Less(t, update.DistanceChangeMeters, -10.0)

	items := announcer.All()
	require.Len(t, items, 2)
	assert.Equal(t, domain.CueGettingFurther, items[0].Announcement.Cue)
	assert.Contains(t, items[1].Announcement.Text, "You are moving away from your destination. Current distance:")
}

func TestNavigationTracker_GenericProgress(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(30 * time.Second)
	update, err := tracker.Update("D1", cityHall)
	require.NoError(t, err)
	assert.True(t, update.Announced)

	items := announcer.All()
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Announcement.Cue)
	assert.Equal(t, "Navigation update: 1417 meters to destination.", items[0].Announcement.Text)
	assert.Equal(t, "Update: Navigation update: 1417 meters to destination.", items[0].Announcement.Spoken())
}

func TestNavigationTracker_DistanceTraveled(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = tracker.Update("D1", halfway)
	require.NoError(t, err)

	clock.Advance(time.Second)
	update, err := tracker.Update("D1", cityHall)
	require.NoError(t, err)

	assert.InDelta(t, 2*141.7358, update.TotalDistanceTraveledMeters, 0.01)
	assert.InDelta(t, 2*0.1417358, update.Session.TotalDistanceTraveledKm, 1e-5)
}

func TestNavigationTracker_Stop(t *testing.T) {
	tracker, announcer, _ := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	_, err = tracker.Start("D2", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	assert.True(t, tracker.Stop("D1", ""))
	items := announcer.All()
	require.Len(t, items, 1)
	assert.Equal(t, "Navigation cancelled.", items[0].Announcement.Text)

	assert.True(t, tracker.Stop("D2", "cleanup"))
	assert.Len(t, announcer.All(), 1)

	assert.False(t, tracker.Stop("D1", "manual"))
	assert.False(t, tracker.Stop("unknown", "manual"))

	update, err := tracker.Update("D1", cityHall)
	require.NoError(t, err)
	assert.Nil(t, update)
	assert.Zero(t, tracker.Status().ActiveCount)
}

func TestNavigationTracker_StartReplacesSession(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	first, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)

	coit := domain.Target{Name: "Coit Tower", Coordinate: domain.Coordinate{Latitude: 37.8024, Longitude: -122.4058}}
	second, err := tracker.Start("D1", coit, cityHall)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	status := tracker.Status()
	assert.Equal(t, 1, status.ActiveCount)
	assert.Equal(t, "Coit Tower", status.Navigations[0].Target)

	// позиция у старой цели больше не считается прибытием
	update, err := tracker.Update("D1", ferryBuilding.Coordinate)
	require.NoError(t, err)
	assert.Equal(t, domain.NavigationStatusNavigating, update.Status)
}

func TestNavigationTracker_SweepIdle(t *testing.T) {
	tracker, announcer, clock := newTestTracker(t)

	_, err := tracker.Start("stale", ferryBuilding, cityHall)
	require.NoError(t, err)
	_, err = tracker.Start("fresh", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(90 * time.Minute)
	_, err = tracker.Update("fresh", halfway)
	require.NoError(t, err)
	announcer.Reset()

	clock.Advance(40 * time.Minute)
	stopped := tracker.SweepIdle(time.Hour)
	assert.Equal(t, 1, stopped)

	_, ok := tracker.Get("stale")
	assert.False(t, ok)
	_, ok = tracker.Get("fresh")
	assert.True(t, ok)
	assert.Empty(t, announcer.All())
}

func TestNavigationTracker_SetThresholds(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	require.NoError(t, tracker.SetThresholds(domain.NavigationThresholds{ArrivalMeters: 600}))
	th := tracker.Thresholds()
	assert.Equal(t, 600.0, th.ArrivalMeters)
	assert.Equal(t, 10.0, th.DistanceChangeMeters)
	assert.Equal(t, 30*time.Second, th.AnnounceInterval)
	assert.Equal(t, th, tracker.Status().Thresholds)

	err := tracker.SetThresholds(domain.NavigationThresholds{AnnounceInterval: -time.Second})
	assert.ErrorIs(t, err, apperrors.ErrInvalidThresholds)

	_, err = tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)

	// ~545 м до цели
	update, err := tracker.Update("D1", domain.Coordinate{Latitude: 37.78, Longitude: -122.4094})
	require.NoError(t, err)
	assert.Equal(t, domain.NavigationStatusArrived, update.Status)
}

func TestNavigationTracker_ConcurrentDevices(t *testing.T) {
	tracker, _, clock := newTestTracker(t)

	const devices = 32
	var wg sync.WaitGroup
	for i := 0; i < devices; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("device-%d", i)
			_, err := tracker.Start(id, ferryBuilding, cityHall)
			assert.NoError(t, err)
			for step := 0; step < 20; step++ {
				_, err := tracker.Update(id, halfway)
				assert.NoError(t, err)
				_ = tracker.Status()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, devices, tracker.Status().ActiveCount)

	clock.Advance(time.Minute)

	// параллельные обновления и остановка одного устройства
	for i := 0; i < devices; i++ {
		wg.Add(2)
		id := fmt.Sprintf("device-%d", i)
		go func() {
			defer wg.Done()
			for step := 0; step < 20; step++ {
				_, err := tracker.Update(id, cityHall)
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			tracker.Stop(id, "cleanup")
		}()
	}
	wg.Wait()

	assert.Zero(t, tracker.Status().ActiveCount)
}

func TestNavigationTracker_ConcurrentArrivalOnce(t *testing.T) {
	tracker, announcer, _ := newTestTracker(t)

	_, err := tracker.Start("D1", ferryBuilding, cityHall)
	require.NoError(t, err)
	announcer.Reset()

	var wg sync.WaitGroup
	var mu sync.Mutex
	arrivals := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			update, err := tracker.Update("D1", ferryBuilding.Coordinate)
			assert.NoError(t, err)
			if update != nil && update.Status == domain.NavigationStatusArrived {
				mu.Lock()
				arrivals++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, arrivals)
	assert.Len(t, announcer.All(), 2)
}
