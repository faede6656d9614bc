package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSafetyCheckEvent_Validate(t *testing.T) {
	valid := &Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	outOfRange := &Coordinate{Latitude: 91, Longitude: 0}

	tests := []struct {
		name    string
		event   SafetyCheckEvent
		wantErr bool
	}{
		{
			name:    "location with origin",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: SafetyCheckLocation, From: valid},
			wantErr: false,
		},
		{
			name:    "location without origin",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: SafetyCheckLocation},
			wantErr: true,
		},
		{
			name:    "route with both ends",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: SafetyCheckRoute, From: valid, To: valid},
			wantErr: false,
		},
		{
			name:    "route without destination",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: SafetyCheckRoute, From: valid},
			wantErr: true,
		},
		{
			name:    "route with invalid destination",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: SafetyCheckRoute, From: valid, To: outOfRange},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			event:   SafetyCheckEvent{JobID: uuid.New(), Kind: "weather", From: valid},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
