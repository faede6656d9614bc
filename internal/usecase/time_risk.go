package usecase

import (
	"time"

	"github.com/safety-navigator/internal/domain"
)

const (
	factorNight        = "Night time hours"
	factorLateNight    = "Late night hours"
	factorWeekendNight = "Weekend night"

	timeRiskRecommendation = "Exercise extra caution during these hours"
)

// AssessTimeRisk оценивает риск по времени суток. Час берется в зоне t.
func AssessTimeRisk(t time.Time) domain.TimeRiskAssessment {
	hour := t.Hour()
	weekday := t.Weekday()

	a := domain.TimeRiskAssessment{
		IsNight:     hour < 6 || hour > 22,
		IsLateNight: hour < 4 || hour > 23,
		IsWeekend:   weekday == time.Saturday || weekday == time.Sunday,
		Factors:     []string{},
	}

	if a.IsNight {
		a.RiskLevel += 1
		a.Factors = append(a.Factors, factorNight)
	}
	if a.IsLateNight {
		a.RiskLevel += 1
		a.Factors = append(a.Factors, factorLateNight)
	}
	if a.IsWeekend && a.IsNight {
		a.RiskLevel += 0.5
		a.Factors = append(a.Factors, factorWeekendNight)
	}

	if a.RiskLevel > 1.5 {
		a.Recommendation = timeRiskRecommendation
	}

	return a
}

// TimeRiskModel применяет AssessTimeRisk к текущему времени в заданной зоне
type TimeRiskModel struct {
	clock Clock
	loc   *time.Location
}

func NewTimeRiskModel(clock Clock, loc *time.Location) *TimeRiskModel {
	if clock == nil {
		clock = SystemClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &TimeRiskModel{clock: clock, loc: loc}
}

func (m *TimeRiskModel) Now() time.Time {
	return m.clock.Now().In(m.loc)
}

func (m *TimeRiskModel) Current() domain.TimeRiskAssessment {
	return AssessTimeRisk(m.Now())
}
