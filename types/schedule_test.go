package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBulletin = `{
	"schedule": [
		{
			"E2B": [null, "M 16 (Mu) odpadá", null, "F 16 Rk(Lc)+"],
			"C1A": ["1/2 A 6 Ju(Ry)+"],
			"ABSENCE": [
				{"teacher": "Jan Novák", "teacherCode": "Mu", "type": "wholeDay"},
				{"teacherCode": "Lc", "type": "range", "hours": {"from": 1, "to": 4}}
			]
		},
		{
			"C1A": ["   ", null],
			"E2B": ["C 15 Mr(Bo) posun za 6. h."]
		}
	],
	"props": [
		{"date": "2024-03-15", "priprava": true}
	],
	"status": {
		"lastUpdated": "15.3.2024 7:02",
		"currentUpdateSchedule": 10,
		"message": "beze změn"
	},
	"somethingUnknown": 42
}`

func TestParseSchedule(t *testing.T) {
	schedule, err := ParseSchedule(sampleBulletin)
	require.NoError(t, err)
	require.Len(t, schedule.DailySchedules, 2)

	day := schedule.DailySchedules[0]
	assert.Equal(t, "2024-03-15", day.Date)
	assert.True(t, day.IsPriprava)
	require.Len(t, day.ClassSubs, 2)
	assert.Equal(t, "E2B", day.ClassSubs[0].Class)
	assert.Equal(t, "C1A", day.ClassSubs[1].Class)

	require.Len(t, day.Absences, 2)
	assert.Equal(t, "Jan Novák", day.Absences[0].Teacher)
	assert.Equal(t, AbsenceWholeDay, day.Absences[0].Type)
	assert.Nil(t, day.Absences[0].Hours)
	require.NotNil(t, day.Absences[1].Hours)
	assert.Equal(t, HourRange{From: 1, To: 4}, *day.Absences[1].Hours)

	assert.Equal(t, "15.3.2024 7:02", schedule.Status.LastUpdated)
	assert.Equal(t, 10, schedule.Status.CurrentUpdateSchedule)
	assert.Equal(t, "beze změn", schedule.Status.Message)
}

func TestParseSchedule_HourNumbering(t *testing.T) {
	schedule, err := ParseSchedule(sampleBulletin)
	require.NoError(t, err)

	lessons := schedule.DailySchedules[0].ForClass("E2B")
	require.Len(t, lessons, 2)
	assert.Equal(t, 2, lessons[0].Hour)
	assert.Equal(t, "M", lessons[0].Subject)
	assert.Equal(t, 4, lessons[1].Hour)
	assert.Equal(t, "F", lessons[1].Subject)
}

func TestParseSchedule_BlankOnlyClassOmitted(t *testing.T) {
	schedule, err := ParseSchedule(sampleBulletin)
	require.NoError(t, err)

	day := schedule.DailySchedules[1]
	assert.Nil(t, day.ForClass("C1A"))
	require.Len(t, day.ClassSubs, 1)
	assert.Equal(t, "E2B", day.ClassSubs[0].Class)
	assert.Nil(t, day.Absences)
}

func TestParseSchedule_MissingPropsFallsBack(t *testing.T) {
	schedule, err := ParseSchedule(sampleBulletin)
	require.NoError(t, err)

	day := schedule.DailySchedules[1]
	assert.Equal(t, "unknown", day.Date)
	assert.False(t, day.IsPriprava)
}

func TestParseSchedule_AbsenceKeyNeverAClass(t *testing.T) {
	schedule, err := ParseSchedule(sampleBulletin)
	require.NoError(t, err)

	for _, day := range schedule.DailySchedules {
		for _, cs := range day.ClassSubs {
			assert.NotEqual(t, AbsenceKey, cs.Class)
		}
	}
}

func TestParseSchedule_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"no schedule key", `{"status": {}}`},
		{"schedule not an array", `{"schedule": {}, "status": {}}`},
		{"no status key", `{"schedule": []}`},
		{"status not an object", `{"schedule": [], "status": 5}`},
		{"day not an object", `{"schedule": [17], "status": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchedule(tt.body)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestParseSchedule_BrokenAbsencePropagates(t *testing.T) {
	body := `{
		"schedule": [{"ABSENCE": [{"type": "wholeDay"}]}],
		"status": {}
	}`
	_, err := ParseSchedule(body)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}
