package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
)

const (
	defaultAnnouncementQueue = 256
	speakTimeout             = 5 * time.Second
)

// Announcer принимает сообщения для озвучки и не блокирует вызывающего
type Announcer interface {
	Enqueue(deviceID string, items ...domain.Announcement)
}

// Speaker - получатель озвучки (лог, стрим для аудио-клиента)
type Speaker interface {
	Name() string
	Speak(ctx context.Context, deviceID string, a domain.Announcement) error
}

type scheduledAnnouncement struct {
	deviceID     string
	announcement domain.Announcement
}

// AnnouncementScheduler - очередь озвучки с отложенной доставкой.
// Ошибки получателей только логируются.
type AnnouncementScheduler struct {
	speakers []Speaker
	logger   *zap.Logger
	queue    chan scheduledAnnouncement
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	ctx    context.Context
}

// NewAnnouncementScheduler создает планировщик озвучки
func NewAnnouncementScheduler(logger *zap.Logger, queueSize int, speakers ...Speaker) *AnnouncementScheduler {
	if queueSize <= 0 {
		queueSize = defaultAnnouncementQueue
	}
	return &AnnouncementScheduler{
		speakers: speakers,
		logger:   logger,
		queue:    make(chan scheduledAnnouncement, queueSize),
		stopChan: make(chan struct{}),
		timers:   make(map[*time.Timer]struct{}),
		ctx:      context.Background(),
	}
}

// Start запускает обработку очереди
func (s *AnnouncementScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop останавливает планировщик: отложенные сообщения отменяются,
// уже начатые доставки дожидаются завершения.
func (s *AnnouncementScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		for t := range s.timers {
			if t.Stop() {
				s.wg.Done()
			}
			delete(s.timers, t)
		}
		s.mu.Unlock()

		s.wg.Wait()
	})
}

// Enqueue ставит сообщения в очередь. При переполнении сообщение отбрасывается.
func (s *AnnouncementScheduler) Enqueue(deviceID string, items ...domain.Announcement) {
	for _, a := range items {
		select {
		case <-s.stopChan:
			s.logger.Debug("Announcement scheduler stopped, dropping",
				zap.String("device_id", deviceID))
			return
		default:
		}

		select {
		case s.queue <- scheduledAnnouncement{deviceID: deviceID, announcement: a}:
		default:
			s.logger.Warn("Announcement queue full, dropping",
				zap.String("device_id", deviceID),
				zap.String("category", string(a.Category)))
		}
	}
}

func (s *AnnouncementScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Announcement scheduler context cancelled")
			return
		case <-s.stopChan:
			s.logger.Info("Announcement scheduler stopped")
			return
		case item := <-s.queue:
			s.schedule(item)
		}
	}
}

func (s *AnnouncementScheduler) schedule(item scheduledAnnouncement) {
	if item.announcement.Delay <= 0 {
		s.deliver(item)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.stopChan:
		return
	default:
	}

	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(item.announcement.Delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		delete(s.timers, timer)
		s.mu.Unlock()

		select {
		case <-s.stopChan:
			return
		default:
		}
		s.deliver(item)
	})
	s.timers[timer] = struct{}{}
}

func (s *AnnouncementScheduler) deliver(item scheduledAnnouncement) {
	s.mu.Lock()
	base := s.ctx
	s.mu.Unlock()

	for _, speaker := range s.speakers {
		ctx, cancel := context.WithTimeout(base, speakTimeout)
		err := speaker.Speak(ctx, item.deviceID, item.announcement)
		cancel()
		if err != nil {
			s.logger.Warn("Announcement delivery failed",
				zap.String("speaker", speaker.Name()),
				zap.String("device_id", item.deviceID),
				zap.Error(err))
		}
	}
}
