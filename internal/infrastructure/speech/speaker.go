package speech

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/safety-navigator/internal/domain"
	"github.com/safety-navigator/internal/domain/repository"
)

// LogSpeaker пишет озвучку в лог. Используется, когда аудио-клиента нет.
type LogSpeaker struct {
	logger *zap.Logger
}

func NewLogSpeaker(logger *zap.Logger) *LogSpeaker {
	return &LogSpeaker{logger: logger}
}

func (s *LogSpeaker) Name() string {
	return "log"
}

func (s *LogSpeaker) Speak(_ context.Context, deviceID string, a domain.Announcement) error {
	s.logger.Info("Announcement",
		zap.String("device_id", deviceID),
		zap.String("category", string(a.Category)),
		zap.String("cue", string(a.Cue)),
		zap.String("text", a.Spoken()))
	return nil
}

// StreamSpeaker публикует озвучку в Redis Stream для аудио-клиента
type StreamSpeaker struct {
	streams repository.StreamRepository
	stream  string
}

// NewStreamSpeaker создает StreamSpeaker, stream пустой - domain.StreamNavigationAnnounce
func NewStreamSpeaker(streams repository.StreamRepository, stream string) *StreamSpeaker {
	if stream == "" {
		stream = domain.StreamNavigationAnnounce
	}
	return &StreamSpeaker{streams: streams, stream: stream}
}

func (s *StreamSpeaker) Name() string {
	return "stream"
}

func (s *StreamSpeaker) Speak(ctx context.Context, deviceID string, a domain.Announcement) error {
	event := &domain.AnnouncementEvent{
		DeviceID: deviceID,
		Text:     a.Spoken(),
		Category: a.Category,
		Cue:      a.Cue,
	}
	if err := s.streams.PublishToStream(ctx, s.stream, event); err != nil {
		return fmt.Errorf("publish announcement: %w", err)
	}
	return nil
}
