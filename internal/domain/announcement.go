package domain

import "time"

// AnnouncementCategory определяет префикс озвучки
type AnnouncementCategory string

const (
	CategoryInfo     AnnouncementCategory = "info"
	CategorySuccess  AnnouncementCategory = "success"
	CategoryWarning  AnnouncementCategory = "warning"
	CategoryProgress AnnouncementCategory = "progress"
)

var categoryPrefixes = map[AnnouncementCategory]string{
	CategorySuccess:  "Congratulations! ",
	CategoryWarning:  "Attention: ",
	CategoryInfo:     "Navigation: ",
	CategoryProgress: "Update: ",
}

// Cue - заранее подготовленная короткая фраза
type Cue string

const (
	CueDestinationReached Cue = "destination_reached"
	CueGettingCloser      Cue = "getting_closer"
	CueGettingFurther     Cue = "getting_further"
	CueNavigationStarted  Cue = "navigation_started"
	CueHighRiskWarning    Cue = "high_risk_warning"
	CueSafetyComplete     Cue = "safety_complete"
)

var cueTexts = map[Cue]string{
	CueDestinationReached: "Congratulations! You have reached your destination!",
	CueGettingCloser:      "You are getting closer to your destination",
	CueGettingFurther:     "You are moving away from your destination",
	CueNavigationStarted:  "Navigation started",
	CueHighRiskWarning:    "Warning: High risk area detected",
	CueSafetyComplete:     "Safety check complete",
}

func (c Cue) Text() string {
	return cueTexts[c]
}

// Announcement - сообщение для озвучки. Либо Text, либо Cue.
type Announcement struct {
	Delay    time.Duration        `json:"-"`
	Category AnnouncementCategory `json:"category"`
	Text     string               `json:"text,omitempty"`
	Cue      Cue                  `json:"cue,omitempty"`
}

// Spoken возвращает итоговую фразу с префиксом категории
func (a Announcement) Spoken() string {
	if a.Cue != "" {
		return a.Cue.Text()
	}
	return categoryPrefixes[a.Category] + a.Text
}
