package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	apperrors "github.com/safety-navigator/internal/pkg/errors"
	"github.com/safety-navigator/internal/pkg/geo"
)

const (
	defaultDistanceThreshold = 10.0
	defaultAnnounceInterval  = 30 * time.Second
	defaultArrivalThreshold  = 20.0

	arrivalCueDelay     = 2 * time.Second
	progressSpeechDelay = 1500 * time.Millisecond
)

// trackedSession - сессия со своим мьютексом. removed выставляется под мьютексом
// сессии после удаления из таблицы, после этого обновления не применяются.
type trackedSession struct {
	mu      sync.Mutex
	session domain.NavigationSession
	removed bool
}

// NavigationTracker ведет активные навигации устройств.
// Операции над одним устройством сериализуются, разные устройства не блокируют друг друга.
type NavigationTracker struct {
	announcer Announcer
	clock     Clock
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*trackedSession

	thresholdsMu sync.RWMutex
	thresholds   domain.NavigationThresholds
}

// NewNavigationTracker создает новый трекер
func NewNavigationTracker(announcer Announcer, clock Clock, thresholds domain.NavigationThresholds, logger *zap.Logger) *NavigationTracker {
	if clock == nil {
		clock = SystemClock()
	}
	if thresholds.DistanceChangeMeters <= 0 {
		thresholds.DistanceChangeMeters = defaultDistanceThreshold
	}
	if thresholds.AnnounceInterval <= 0 {
		thresholds.AnnounceInterval = defaultAnnounceInterval
	}
	if thresholds.ArrivalMeters <= 0 {
		thresholds.ArrivalMeters = defaultArrivalThreshold
	}
	return &NavigationTracker{
		announcer:  announcer,
		clock:      clock,
		logger:     logger,
		sessions:   make(map[string]*trackedSession),
		thresholds: thresholds,
	}
}

// Start начинает навигацию. Существующая сессия устройства заменяется.
func (t *NavigationTracker) Start(deviceID string, target domain.Target, current domain.Coordinate) (*domain.NavigationSession, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, apperrors.ErrInvalidDeviceID
	}
	if strings.TrimSpace(target.Name) == "" || target.Coordinate.Validate() != nil {
		return nil, apperrors.ErrInvalidTarget
	}
	if err := current.Validate(); err != nil {
		return nil, apperrors.ErrInvalidCoordinates
	}

	now := t.clock.Now()
	distanceKm := geo.DistanceKm(current, target.Coordinate)

	entry := &trackedSession{
		session: domain.NavigationSession{
			ID:                   uuid.New(),
			DeviceID:             deviceID,
			Target:               target,
			StartLocation:        current,
			LastLocation:         current,
			LastDistanceKm:       distanceKm,
			LastAnnouncementTime: now,
			LastUpdateTime:       now,
			StartTime:            now,
			IsActive:             true,
		},
	}
	snapshot := entry.session

	t.mu.Lock()
	previous := t.sessions[deviceID]
	t.sessions[deviceID] = entry
	t.mu.Unlock()

	if previous != nil {
		previous.mu.Lock()
		previous.removed = true
		previous.session.IsActive = false
		previous.mu.Unlock()
		t.logger.Info("Navigation replaced",
			zap.String("device_id", deviceID),
			zap.String("previous_target", previous.session.Target.Name))
	}

	t.logger.Info("Navigation started",
		zap.String("device_id", deviceID),
		zap.String("target", target.Name),
		zap.Float64("distance_m", distanceKm*1000))

	t.announce(deviceID, domain.Announcement{
		Category: domain.CategoryInfo,
		Text:     fmt.Sprintf("Navigation started to %s. Distance: %d meters.", target.Name, roundMeters(distanceKm)),
	})

	return &snapshot, nil
}

// Update обрабатывает новую позицию. Возвращает nil, если активной навигации нет.
func (t *NavigationTracker) Update(deviceID string, current domain.Coordinate) (*domain.NavigationUpdate, error) {
	if err := current.Validate(); err != nil {
		return nil, apperrors.ErrInvalidCoordinates
	}

	t.mu.RLock()
	entry := t.sessions[deviceID]
	t.mu.RUnlock()
	if entry == nil {
		return nil, nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := &entry.session
	if entry.removed || !s.IsActive || s.HasArrived {
		return nil, nil
	}

	th := t.Thresholds()
	now := t.clock.Now()

	currentKm := geo.DistanceKm(current, s.Target.Coordinate)
	changeKm := s.LastDistanceKm - currentKm
	s.TotalDistanceTraveledKm += geo.DistanceKm(s.LastLocation, current)
	s.LastLocation = current
	s.LastDistanceKm = currentKm
	s.LastUpdateTime = now

	if currentKm*1000 <= th.ArrivalMeters {
		s.HasArrived = true
		s.IsActive = false
		entry.removed = true
		t.removeEntry(deviceID, entry)

		minutes := int(math.Round(now.Sub(s.StartTime).Minutes()))
		t.logger.Info("Destination reached",
			zap.String("device_id", deviceID),
			zap.String("target", s.Target.Name),
			zap.Int("minutes", minutes))

		t.announce(deviceID,
			domain.Announcement{
				Category: domain.CategorySuccess,
				Text: fmt.Sprintf("You have reached your destination: %s. Journey completed in %d minutes.",
					s.Target.Name, minutes),
			},
			domain.Announcement{
				Delay:    arrivalCueDelay,
				Category: domain.CategorySuccess,
				Cue:      domain.CueDestinationReached,
			},
		)

		return t.result(domain.NavigationStatusArrived, s, changeKm, true), nil
	}

	announced := false
	if now.Sub(s.LastAnnouncementTime) >= th.AnnounceInterval {
		changeMeters := changeKm * 1000
		remaining := roundMeters(currentKm)

		var cue domain.Cue
		var text string
		switch {
		case math.Abs(changeMeters) > th.DistanceChangeMeters && changeMeters > 0:
			cue = domain.CueGettingCloser
			text = fmt.Sprintf("You are getting closer to your destination. %d meters remaining.", remaining)
		case math.Abs(changeMeters) > th.DistanceChangeMeters:
			cue = domain.CueGettingFurther
			text = fmt.Sprintf("You are moving away from your destination. Current distance: %d meters.", remaining)
		default:
			text = fmt.Sprintf("Navigation update: %d meters to destination.", remaining)
		}

		items := make([]domain.Announcement, 0, 2)
		if cue != "" {
			items = append(items, domain.Announcement{Category: domain.CategoryProgress, Cue: cue})
		}
		items = append(items, domain.Announcement{
			Delay:    progressSpeechDelay,
			Category: domain.CategoryProgress,
			Text:     text,
		})
		t.announce(deviceID, items...)

		s.LastAnnouncementTime = now
		announced = true
	}

	return t.result(domain.NavigationStatusNavigating, s, changeKm, announced), nil
}

// Stop удаляет навигацию устройства. Пустая причина считается ручной отменой,
// только она озвучивается. Возвращает false, если навигации не было.
func (t *NavigationTracker) Stop(deviceID, reason string) bool {
	if reason == "" {
		reason = domain.StopReasonManual
	}

	t.mu.Lock()
	entry := t.sessions[deviceID]
	delete(t.sessions, deviceID)
	t.mu.Unlock()

	if entry == nil {
		return false
	}

	entry.mu.Lock()
	alreadyRemoved := entry.removed
	entry.removed = true
	entry.session.IsActive = false
	entry.mu.Unlock()

	if alreadyRemoved {
		return false
	}

	t.logger.Info("Navigation stopped",
		zap.String("device_id", deviceID),
		zap.String("reason", reason))

	if reason == domain.StopReasonManual {
		t.announce(deviceID, domain.Announcement{
			Category: domain.CategoryInfo,
			Text:     "Navigation cancelled.",
		})
	}
	return true
}

// Get возвращает копию сессии устройства
func (t *NavigationTracker) Get(deviceID string) (*domain.NavigationSession, bool) {
	t.mu.RLock()
	entry := t.sessions[deviceID]
	t.mu.RUnlock()
	if entry == nil {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.removed {
		return nil, false
	}
	snapshot := entry.session
	return &snapshot, true
}

// Status - сводка по активным навигациям
func (t *NavigationTracker) Status() domain.TrackerStatus {
	entries := t.snapshotEntries()

	navigations := make([]domain.NavigationSummary, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		if !entry.removed {
			s := entry.session
			navigations = append(navigations, domain.NavigationSummary{
				DeviceID:              s.DeviceID,
				Target:                s.Target.Name,
				CurrentDistanceMeters: s.LastDistanceKm * 1000,
				IsActive:              s.IsActive,
				StartTime:             s.StartTime,
			})
		}
		entry.mu.Unlock()
	}

	sort.Slice(navigations, func(i, j int) bool {
		return navigations[i].DeviceID < navigations[j].DeviceID
	})

	return domain.TrackerStatus{
		ActiveCount: len(navigations),
		Thresholds:  t.Thresholds(),
		Navigations: navigations,
	}
}

// SetThresholds меняет пороги. Нулевые значения оставляют текущие.
func (t *NavigationTracker) SetThresholds(th domain.NavigationThresholds) error {
	if th.DistanceChangeMeters < 0 || th.AnnounceInterval < 0 || th.ArrivalMeters < 0 {
		return apperrors.ErrInvalidThresholds
	}

	t.thresholdsMu.Lock()
	defer t.thresholdsMu.Unlock()

	if th.DistanceChangeMeters > 0 {
		t.thresholds.DistanceChangeMeters = th.DistanceChangeMeters
	}
	if th.AnnounceInterval > 0 {
		t.thresholds.AnnounceInterval = th.AnnounceInterval
	}
	if th.ArrivalMeters > 0 {
		t.thresholds.ArrivalMeters = th.ArrivalMeters
	}
	return nil
}

func (t *NavigationTracker) Thresholds() domain.NavigationThresholds {
	t.thresholdsMu.RLock()
	defer t.thresholdsMu.RUnlock()
	return t.thresholds
}

// SweepIdle останавливает навигации без обновлений дольше maxIdle. Возвращает число остановленных.
func (t *NavigationTracker) SweepIdle(maxIdle time.Duration) int {
	now := t.clock.Now()

	var stale []string
	for _, entry := range t.snapshotEntries() {
		entry.mu.Lock()
		if !entry.removed && now.Sub(entry.session.LastUpdateTime) > maxIdle {
			stale = append(stale, entry.session.DeviceID)
		}
		entry.mu.Unlock()
	}

	stopped := 0
	for _, deviceID := range stale {
		if t.stopIfIdle(deviceID, now, maxIdle) {
			stopped++
		}
	}
	return stopped
}

// stopIfIdle повторно проверяет простой под мьютексом сессии:
// между проверкой и остановкой могло прийти обновление.
func (t *NavigationTracker) stopIfIdle(deviceID string, now time.Time, maxIdle time.Duration) bool {
	t.mu.RLock()
	entry := t.sessions[deviceID]
	t.mu.RUnlock()
	if entry == nil {
		return false
	}

	entry.mu.Lock()
	idle := !entry.removed && now.Sub(entry.session.LastUpdateTime) > maxIdle
	entry.mu.Unlock()
	if !idle {
		return false
	}

	t.mu.Lock()
	if t.sessions[deviceID] != entry {
		t.mu.Unlock()
		return false
	}
	t.mu.Unlock()

	return t.Stop(deviceID, domain.StopReasonTimeout)
}

// removeEntry удаляет запись, только если таблица все еще указывает на нее
func (t *NavigationTracker) removeEntry(deviceID string, entry *trackedSession) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sessions[deviceID] == entry {
		delete(t.sessions, deviceID)
	}
}

func (t *NavigationTracker) snapshotEntries() []*trackedSession {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := make([]*trackedSession, 0, len(t.sessions))
	for _, entry := range t.sessions {
		entries = append(entries, entry)
	}
	return entries
}

func (t *NavigationTracker) announce(deviceID string, items ...domain.Announcement) {
	if t.announcer == nil {
		return
	}
	t.announcer.Enqueue(deviceID, items...)
}

func (t *NavigationTracker) result(status domain.NavigationStatus, s *domain.NavigationSession, changeKm float64, announced bool) *domain.NavigationUpdate {
	return &domain.NavigationUpdate{
		Status:                      status,
		CurrentDistanceMeters:       s.LastDistanceKm * 1000,
		DistanceChangeMeters:        changeKm * 1000,
		TotalDistanceTraveledMeters: s.TotalDistanceTraveledKm * 1000,
		Announced:                   announced,
		Session:                     *s,
	}
}

func roundMeters(km float64) int {
	return int(math.Round(km * 1000))
}
