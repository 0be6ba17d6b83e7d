package types

import (
	"fmt"
	"strings"
)

// SubstitutedLesson is one parsed entry of the substitution bulletin.
// Optional fields hold the empty string when the text carried no
// matching pattern; the flags are independent bits and more than one
// may be set at once.
type SubstitutedLesson struct {
	Hour                int    `json:"hour"`
	Group               string `json:"group,omitempty"`
	Subject             string `json:"subject,omitempty"`
	Room                string `json:"room,omitempty"`
	SubstitutingTeacher string `json:"substitutingTeacher,omitempty"`
	MissingTeacher      string `json:"missingTeacher,omitempty"`
	IsDropped           bool   `json:"isDropped"`
	IsJoined            bool   `json:"isJoined"`
	IsSeparated         bool   `json:"isSeparated"`
	RoomChanged         bool   `json:"roomChanged"`
	IsShifted           bool   `json:"isShifted"`
	ShiftTarget         string `json:"shiftTarget,omitempty"`
	Note                string `json:"note,omitempty"`
	OriginalText        string `json:"originalText"`
}

func (l SubstitutedLesson) String() string {
	parts := []string{fmt.Sprintf("%d.", l.Hour)}
	if l.Group != "" {
		parts = append(parts, l.Group)
	}
	if l.Subject != "" {
		parts = append(parts, l.Subject)
	}
	if l.Room != "" {
		parts = append(parts, "room "+l.Room)
	}
	if l.SubstitutingTeacher != "" || l.MissingTeacher != "" {
		parts = append(parts, l.SubstitutingTeacher+"("+l.MissingTeacher+")")
	}
	if l.IsDropped {
		parts = append(parts, "dropped")
	}
	return strings.Join(parts, " ")
}
