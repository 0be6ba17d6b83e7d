package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

type AbsenceType string

const (
	AbsenceWholeDay AbsenceType = "wholeDay"
	AbsenceSingle   AbsenceType = "single"
	AbsenceRange    AbsenceType = "range"
	AbsenceExkurze  AbsenceType = "exkurze"
)

type HourRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// TeacherAbsence is one entry of a day's ABSENCE list. Unlike the lesson
// texts these arrive structured, so a record that does not decode is a
// hard error.
type TeacherAbsence struct {
	Teacher     string      `json:"teacher,omitempty"`
	TeacherCode string      `json:"teacherCode"`
	Type        AbsenceType `json:"type"`
	Hours       *HourRange  `json:"hours,omitempty"`
}

func (a TeacherAbsence) validate() error {
	if strings.TrimSpace(a.TeacherCode) == "" {
		return eris.Wrap(ErrMalformedInput, "absence record has no teacher code")
	}
	switch a.Type {
	case AbsenceWholeDay, AbsenceExkurze:
	case AbsenceSingle, AbsenceRange:
		if a.Hours == nil {
			return eris.Wrapf(ErrMalformedInput, "absence type %q has no hours", a.Type)
		}
	default:
		return eris.Wrapf(ErrMalformedInput, "unknown absence type %q", a.Type)
	}
	return nil
}

func (a TeacherAbsence) String() string {
	name := a.TeacherCode
	if a.Teacher != "" {
		name = fmt.Sprintf("%s (%s)", a.Teacher, a.TeacherCode)
	}
	if a.Hours != nil {
		return fmt.Sprintf("%s: %s %d-%d", name, a.Type, a.Hours.From, a.Hours.To)
	}
	return fmt.Sprintf("%s: %s", name, a.Type)
}

func decodeAbsences(raw gjson.Result) ([]TeacherAbsence, error) {
	if !raw.IsArray() {
		return nil, eris.Wrap(ErrMalformedInput, "absence list is not an array")
	}
	items := raw.Array()
	absences := make([]TeacherAbsence, 0, len(items))
	for _, item := range items {
		var absence TeacherAbsence
		if err := json.Unmarshal([]byte(item.Raw), &absence); err != nil {
			return nil, eris.Wrapf(ErrMalformedInput, "absence record does not decode: %v", err)
		}
		if err := absence.validate(); err != nil {
			return nil, err
		}
		// Hours carry no meaning outside single/range.
		if absence.Type == AbsenceWholeDay || absence.Type == AbsenceExkurze {
			absence.Hours = nil
		}
		absences = append(absences, absence)
	}
	return absences, nil
}
