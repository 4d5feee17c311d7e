package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *Date {
	date := NewDate(y, m, d)
	return &date
}

func intPtr(v int) *int { return &v }

func TestStudy_VisibleOn(t *testing.T) {
	today := NewDate(2026, time.March, 10)

	tests := []struct {
		name  string
		study Study
		want  bool
	}{
		{"published without window", Study{Status: StudyStatusPublished}, true},
		{"draft without window", Study{Status: StudyStatusDraft}, false},
		{"draft inside window", Study{Status: StudyStatusDraft, StartDate: datePtr(2026, 3, 1), EndDate: datePtr(2026, 3, 31)}, false},
		{"starts today", Study{Status: StudyStatusPublished, StartDate: datePtr(2026, 3, 10)}, true},
		{"starts tomorrow", Study{Status: StudyStatusPublished, StartDate: datePtr(2026, 3, 11)}, false},
		{"ends today", Study{Status: StudyStatusPublished, EndDate: datePtr(2026, 3, 10)}, true},
		{"ended yesterday", Study{Status: StudyStatusPublished, EndDate: datePtr(2026, 3, 9)}, false},
		{"inside window", Study{Status: StudyStatusPublished, StartDate: datePtr(2026, 3, 1), EndDate: datePtr(2026, 3, 31)}, true},
		{"unknown status", Study{Status: "archived"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.study.VisibleOn(today))
		})
	}
}

func TestStudy_Annotate(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		count int64
		want  *int64
	}{
		{"unlimited", nil, 7, nil},
		{"room left", intPtr(5), 2, ptr64(3)},
		{"exactly full", intPtr(2), 2, ptr64(0)},
		{"over admitted clamps to zero", intPtr(1), 3, ptr64(0)},
		{"zero limit", intPtr(0), 0, ptr64(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Study{ParticipantLimit: tt.limit, SignupsCount: tt.count}
			s.Annotate()
			if tt.want == nil {
				assert.Nil(t, s.SpotsRemaining)
				return
			}
			require.NotNil(t, s.SpotsRemaining)
			assert.Equal(t, *tt.want, *s.SpotsRemaining)
		})
	}
}

func ptr64(v int64) *int64 { return &v }

func TestStudy_HasCapacityFor(t *testing.T) {
	assert.True(t, (&Study{}).HasCapacityFor(1000))
	assert.True(t, (&Study{ParticipantLimit: intPtr(1)}).HasCapacityFor(0))
	assert.False(t, (&Study{ParticipantLimit: intPtr(1)}).HasCapacityFor(1))
	assert.False(t, (&Study{ParticipantLimit: intPtr(0)}).HasCapacityFor(0))
}

func TestStudy_JSONShape(t *testing.T) {
	s := Study{
		ID:               4,
		Name:             "Roadmap interviews",
		Status:           StudyStatusPublished,
		ParticipantLimit: intPtr(2),
		StartDate:        datePtr(2026, 1, 2),
		SignupsCount:     1,
	}
	s.Annotate()

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "2026-01-02", decoded["start_date"])
	assert.Nil(t, decoded["end_date"])
	assert.EqualValues(t, 1, decoded["spots_remaining"])
	assert.EqualValues(t, 1, decoded["signups_count"])
	assert.NotContains(t, decoded, "Signups")
}

func TestDate_ScanAndParse(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2026-07-08")))
	assert.Equal(t, "2026-07-08", d.String())

	require.NoError(t, d.Scan("2026-09-10T00:00:00Z"))
	assert.Equal(t, "2026-09-10", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	_, err := ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestDateOf_UsesLocationCalendarDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on the 11th is still the 10th in New York.
	instant := time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-11", DateOf(instant).String())
	assert.Equal(t, "2026-03-10", DateOf(instant.In(ny)).String())
}
