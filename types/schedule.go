package types

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// AbsenceKey is the reserved per-day key holding teacher absences; every
// other key of a day object is a class name.
const AbsenceKey = "ABSENCE"

// SubstitutionStatus is the bulletin's own status block, passed through
// unchanged.
type SubstitutionStatus struct {
	LastUpdated           string `json:"lastUpdated"`
	CurrentUpdateSchedule int    `json:"currentUpdateSchedule"`
	Message               string `json:"message,omitempty"`
}

// ClassSubstitutions pairs a class name with its parsed lessons,
// preserving the order classes appear in the bulletin.
type ClassSubstitutions struct {
	Class   string              `json:"class"`
	Lessons []SubstitutedLesson `json:"lessons"`
}

type DailySchedule struct {
	Date       string               `json:"date"`
	IsPriprava bool                 `json:"isPriprava"`
	ClassSubs  []ClassSubstitutions `json:"classSubs"`
	Absences   []TeacherAbsence     `json:"absences"`
}

// ForClass returns the lessons of one class, or nil when the class has no
// substitutions that day.
func (d DailySchedule) ForClass(name string) []SubstitutedLesson {
	for _, cs := range d.ClassSubs {
		if cs.Class == name {
			return cs.Lessons
		}
	}
	return nil
}

type ScheduleWithAbsences struct {
	DailySchedules []DailySchedule    `json:"dailySchedules"`
	Status         SubstitutionStatus `json:"status"`
}

// ParseSchedule decodes a raw bulletin response body into the structured
// schedule. The top-level envelope must carry a schedule array and a
// status object; anything else there is ignored. Free-text lesson entries
// never fail, broken absence records and a broken envelope do.
func ParseSchedule(body string) (ScheduleWithAbsences, error) {
	root := gjson.Parse(body)

	scheduleJSON := root.Get("schedule")
	if !scheduleJSON.IsArray() {
		return ScheduleWithAbsences{}, eris.Wrap(ErrMalformedInput, "schedule key missing or not an array")
	}
	statusJSON := root.Get("status")
	if !statusJSON.IsObject() {
		return ScheduleWithAbsences{}, eris.Wrap(ErrMalformedInput, "status key missing or not an object")
	}

	props := root.Get("props").Array()
	days := scheduleJSON.Array()

	result := ScheduleWithAbsences{
		DailySchedules: make([]DailySchedule, 0, len(days)),
		Status: SubstitutionStatus{
			LastUpdated:           statusJSON.Get("lastUpdated").String(),
			CurrentUpdateSchedule: int(statusJSON.Get("currentUpdateSchedule").Int()),
			Message:               statusJSON.Get("message").String(),
		},
	}

	for i, day := range days {
		daily, err := decodeDay(day)
		if err != nil {
			return ScheduleWithAbsences{}, err
		}
		if i < len(props) {
			daily.Date = props[i].Get("date").String()
			daily.IsPriprava = props[i].Get("priprava").Bool()
		} else {
			daily.Date = "unknown"
		}
		result.DailySchedules = append(result.DailySchedules, daily)
	}

	return result, nil
}

func decodeDay(day gjson.Result) (DailySchedule, error) {
	if !day.IsObject() {
		return DailySchedule{}, eris.Wrap(ErrMalformedInput, "schedule day is not an object")
	}

	var daily DailySchedule
	var err error
	day.ForEach(func(key, value gjson.Result) bool {
		if key.String() == AbsenceKey {
			daily.Absences, err = decodeAbsences(value)
			return err == nil
		}
		if lessons := splitClassEntries(value); len(lessons) > 0 {
			daily.ClassSubs = append(daily.ClassSubs, ClassSubstitutions{
				Class:   key.String(),
				Lessons: lessons,
			})
		}
		return true
	})
	if err != nil {
		return DailySchedule{}, err
	}
	return daily, nil
}

// splitClassEntries parses the non-blank entries of one class array.
// The hour is always index+1: blank slots are skipped but keep their
// position, so later entries are not renumbered.
func splitClassEntries(entries gjson.Result) []SubstitutedLesson {
	var lessons []SubstitutedLesson
	for i, entry := range entries.Array() {
		if entry.Type != gjson.String || strings.TrimSpace(entry.String()) == "" {
			continue
		}
		lessons = append(lessons, ParseLessonText(entry.String(), i+1))
	}
	return lessons
}
