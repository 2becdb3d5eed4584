package handler

import (
	"testing"
	"time"

	"eventhub/constants"
	"eventhub/model"

	"github.com/stretchr/testify/assert"
)

func TestReviewWindowOpen(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		endDate time.Time
		want    bool
	}{
		{"completed event", constants.EVENT_COMPLETED, now.Add(24 * time.Hour), true},
		{"published, ended but not yet flipped", constants.EVENT_PUBLISHED, now.Add(-time.Hour), true},
		{"published, end date exactly now", constants.EVENT_PUBLISHED, now, true},
		{"published, still running", constants.EVENT_PUBLISHED, now.Add(time.Hour), false},
		{"draft with future end date", constants.EVENT_DRAFT, now.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.Event{Status: tt.status, EndDate: tt.endDate}
			assert.Equal(t, tt.want, reviewWindowOpen(event, now))
		})
	}
}
