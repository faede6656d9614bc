package usecase

import "time"

// Clock - источник текущего времени, подменяется в тестах
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock возвращает часы на основе time.Now
func SystemClock() Clock {
	return systemClock{}
}
