package types

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The bulletin is written by hand with no fixed grammar, so the parser is
// a waterfall: each stage claims its substring and removes it from the
// working text, later stages only ever see what is left. Unmatched
// patterns leave the field empty, the function never fails.

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reMissing     = regexp.MustCompile(`\(([A-Z][a-z]?)\)`)
	reTeacherCode = regexp.MustCompile(`^[A-Z][a-z]$`)
	reZeroToken   = regexp.MustCompile(`(?:^| )0(?: |$)`)
	reShiftHour   = regexp.MustCompile(`(?i)\S*posun\S*(?: (?:za|z))? (\d+\. ?h\.)`)
	reShiftToken  = regexp.MustCompile(`(?i)\S*posun\S* (\S+)`)
	reShiftBare   = regexp.MustCompile(`(?i)\S*posun\S*`)
	reRoomUc      = regexp.MustCompile(`(?i:uč)\.? ?(\d+[a-z]?)`)
	reRoomBare    = regexp.MustCompile(`(?:^| )(\d{1,2}[a-z]|\d{1,3})(?: |$)`)
	reRoomGym     = regexp.MustCompile(`(?:^| )(TV|TH)(?: |$)`)
	reGroup       = regexp.MustCompile(`(?:^| )(\d/\d)(?: |$)`)
)

// Status flags are independent predicates over the frozen normalized
// snapshot, never over partially stripped text, so rule order cannot
// change which flags come out.
var flagRules = []struct {
	match func(snap, lower string) bool
	set   func(l *SubstitutedLesson)
}{
	{
		// "oběd" counts as a cancellation only when no teacher
		// parenthetical was present in the entry at all.
		match: func(snap, lower string) bool {
			return strings.Contains(lower, "odpadá") ||
				strings.Contains(lower, "odučeno") ||
				reZeroToken.MatchString(lower) ||
				(strings.Contains(lower, "oběd") && !strings.Contains(snap, "("))
		},
		set: func(l *SubstitutedLesson) { l.IsDropped = true },
	},
	{
		match: func(_, lower string) bool { return strings.Contains(lower, "spoj") },
		set:   func(l *SubstitutedLesson) { l.IsJoined = true },
	},
	{
		match: func(_, lower string) bool { return strings.Contains(lower, "rozděl") },
		set:   func(l *SubstitutedLesson) { l.IsSeparated = true },
	},
	{
		match: func(_, lower string) bool {
			return strings.Contains(lower, "změna") || strings.Contains(lower, "výměna")
		},
		set: func(l *SubstitutedLesson) { l.RoomChanged = true },
	},
	{
		match: func(_, lower string) bool { return strings.Contains(lower, "posun") },
		set:   func(l *SubstitutedLesson) { l.IsShifted = true },
	},
}

// Tokens containing any of these never reach subject or note.
var stripKeywords = []string{
	"odpadá", "odučeno", "spoj", "rozděl", "změna", "výměna",
	"posun", "oběd", "úklid", "vysv", "přednáška", "exkurze",
}

// ParseLessonText turns one free-text bulletin entry into a structured
// lesson. It is total and deterministic: whatever the editor typed, the
// worst case is a record with only Hour and OriginalText populated.
func ParseLessonText(text string, hour int) SubstitutedLesson {
	lesson := SubstitutedLesson{
		Hour:         hour,
		OriginalText: text,
	}

	work := normalize(text)

	// Flags come from the snapshot taken before anything is consumed.
	snap := work
	lower := strings.ToLower(snap)
	for _, rule := range flagRules {
		if rule.match(snap, lower) {
			rule.set(&lesson)
		}
	}

	work = extractTeachers(work, &lesson)
	if lesson.IsShifted {
		work = extractShiftTarget(work, &lesson)
	}
	work = extractRoom(work, &lesson)
	work = extractGroup(work, &lesson)
	classifyResidual(work, &lesson)
	applyCrossRules(&lesson)

	return lesson
}

func normalize(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

func cutSpan(s string, start, end int) string {
	return normalize(s[:start] + " " + s[end:])
}

// extractTeachers anchors on the first "(Xx)" parenthetical, which is
// always the missing teacher. A strict two-letter code token directly
// before the parenthesis (adjacent or space-separated) is the
// substituting teacher and is consumed together with it.
func extractTeachers(work string, lesson *SubstitutedLesson) string {
	loc := reMissing.FindStringSubmatchIndex(work)
	if loc == nil {
		return work
	}
	lesson.MissingTeacher = work[loc[2]:loc[3]]

	start := loc[0]
	prefix := strings.TrimRight(work[:start], " ")
	token := prefix
	if i := strings.LastIndexByte(prefix, ' '); i >= 0 {
		token = prefix[i+1:]
	}
	if reTeacherCode.MatchString(token) && token != "TV" {
		lesson.SubstitutingTeacher = token
		start = len(prefix) - len(token)
	}
	return cutSpan(work, start, loc[1])
}

func extractShiftTarget(work string, lesson *SubstitutedLesson) string {
	if loc := reShiftHour.FindStringSubmatchIndex(work); loc != nil {
		lesson.ShiftTarget = work[loc[2]:loc[3]]
		return cutSpan(work, loc[0], loc[1])
	}
	if loc := reShiftToken.FindStringSubmatchIndex(work); loc != nil {
		lesson.ShiftTarget = work[loc[2]:loc[3]]
		return cutSpan(work, loc[0], loc[1])
	}
	if loc := reShiftBare.FindStringIndex(work); loc != nil {
		return cutSpan(work, loc[0], loc[1])
	}
	return work
}

// Room patterns in priority order: "uč." with a number, then a bare
// short numeric token, then the gym labels.
var roomRules = []*regexp.Regexp{reRoomUc, reRoomBare, reRoomGym}

func extractRoom(work string, lesson *SubstitutedLesson) string {
	for _, re := range roomRules {
		if loc := re.FindStringSubmatchIndex(work); loc != nil {
			lesson.Room = work[loc[2]:loc[3]]
			return cutSpan(work, loc[0], loc[1])
		}
	}
	return work
}

func extractGroup(work string, lesson *SubstitutedLesson) string {
	if loc := reGroup.FindStringSubmatchIndex(work); loc != nil {
		lesson.Group = work[loc[2]:loc[3]]
		return cutSpan(work, loc[0], loc[1])
	}
	return work
}

// classifyResidual strips leftover keyword tokens, then reads a short
// capitalized leading token as the subject and keeps everything else as
// the note.
func classifyResidual(work string, lesson *SubstitutedLesson) {
	var kept []string
	for _, token := range strings.Fields(work) {
		if token == "+" || containsStripKeyword(token) {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		return
	}
	if isSubjectToken(kept[0]) {
		lesson.Subject = kept[0]
		kept = kept[1:]
	}
	lesson.Note = strings.TrimSpace(strings.Join(kept, " "))
}

func containsStripKeyword(token string) bool {
	lower := strings.ToLower(token)
	for _, kw := range stripKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isSubjectToken(token string) bool {
	if utf8.RuneCountInString(token) > 4 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(token)
	return unicode.IsUpper(first)
}

func applyCrossRules(lesson *SubstitutedLesson) {
	if strings.EqualFold(lesson.Subject, "TV") && lesson.Subject != "" {
		lesson.Room = "TV"
	} else if lesson.Room == "TV" && lesson.Subject == "" {
		lesson.Subject = "TV"
	}
	if lesson.Room == "0" {
		lesson.Room = ""
		lesson.IsDropped = true
	}
	if lesson.Subject == "+" || strings.EqualFold(lesson.Subject, "uč") {
		lesson.Subject = ""
	}
	if strings.TrimSpace(lesson.Note) == "" || lesson.Note == "+" {
		lesson.Note = ""
	}
}
