package allocation

import (
	"strconv"
	"strings"
)

// Fixed dimensions of a weekly plan.
const (
	SubjectCount = 6
	DayCount     = 7

	// FieldCount is the number of text fields in a subject row.
	FieldCount = 6
)

// Positions of subject fields within a row.
const (
	FieldName = iota
	FieldLevel
	FieldCurrentGrade
	FieldTargetGrade
	FieldUpcomingAssessment
	FieldDifficulty
)

// Weekdays lists day labels in budget order.
var Weekdays = [DayCount]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// ColumnNames are the header labels of a rendered allocation table.
var ColumnNames = [DayCount + 1]string{
	"Class", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Subject holds the raw text attributes of one class as collected from the
// user. Values are kept verbatim; interpretation happens during calculation.
type Subject struct {
	Name               string `json:"name" yaml:"name"`
	Level              string `json:"level" yaml:"level"`
	CurrentGrade       string `json:"current_grade" yaml:"current_grade"`
	TargetGrade        string `json:"target_grade" yaml:"target_grade"`
	UpcomingAssessment string `json:"upcoming_assessment" yaml:"upcoming_assessment"`
	Difficulty         string `json:"difficulty" yaml:"difficulty"`
}

// SubjectFromFields builds a Subject from a positional row. Missing trailing
// fields are left blank and extra fields are ignored.
func SubjectFromFields(fields []string) Subject {
	get := func(pos int) string {
		if pos >= len(fields) {
			return ""
		}
		return fields[pos]
	}
	return Subject{
		Name:               get(FieldName),
		Level:              get(FieldLevel),
		CurrentGrade:       get(FieldCurrentGrade),
		TargetGrade:        get(FieldTargetGrade),
		UpcomingAssessment: get(FieldUpcomingAssessment),
		Difficulty:         get(FieldDifficulty),
	}
}

// DisplayName returns the trimmed name, or "Class N" for the 1-indexed
// position when the name is blank.
func (s Subject) DisplayName(position int) string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return "Class " + strconv.Itoa(position+1)
	}
	return name
}

// FieldState reports how a text field was interpreted.
type FieldState int

const (
	// FieldBlank means the field held no text.
	FieldBlank FieldState = iota
	// FieldParsed means the field held a recognized value.
	FieldParsed
	// FieldUnparseable means the field held text that could not be interpreted.
	FieldUnparseable
)

func (s FieldState) String() string {
	switch s {
	case FieldBlank:
		return "blank"
	case FieldParsed:
		return "parsed"
	case FieldUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Grade is the parse result of a grade field.
type Grade struct {
	State FieldState
	Value int
}

// ParseGrade interprets a grade field as a base-10 32-bit integer.
// Surrounding whitespace is not stripped, so " 5" is unparseable rather than
// blank, and values outside the int32 range are unparseable.
func ParseGrade(raw string) Grade {
	if raw == "" {
		return Grade{State: FieldBlank}
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return Grade{State: FieldUnparseable}
	}
	return Grade{State: FieldParsed, Value: int(value)}
}

// Level is the course level of a subject.
type Level int

const (
	LevelBlank Level = iota
	LevelHigher
	// LevelStandard covers "SL" and any other non-blank value.
	LevelStandard
)

// ParseLevel maps a level field onto a Level. Matching is case-insensitive
// and whitespace is significant.
func ParseLevel(raw string) Level {
	switch {
	case raw == "":
		return LevelBlank
	case strings.EqualFold(raw, "HL"):
		return LevelHigher
	default:
		return LevelStandard
	}
}

func (l Level) String() string {
	switch l {
	case LevelHigher:
		return "HL"
	case LevelStandard:
		return "SL"
	default:
		return ""
	}
}

// Difficulty is the perceived difficulty tier of a subject.
type Difficulty int

const (
	DifficultyUnknown Difficulty = iota
	DifficultyVeryEasy
	DifficultyEasy
	DifficultyAverage
	DifficultyHard
	DifficultyVeryHard
)

var difficultyLabels = map[Difficulty]string{
	DifficultyVeryEasy: "Very Easy",
	DifficultyEasy:     "Easy",
	DifficultyAverage:  "Average",
	DifficultyHard:     "Hard",
	DifficultyVeryHard: "Very Hard",
}

// ParseDifficulty maps a difficulty field onto a tier, case-insensitively.
// Blank and unrecognized text both yield DifficultyUnknown; the returned
// state tells them apart.
func ParseDifficulty(raw string) (Difficulty, FieldState) {
	if raw == "" {
		return DifficultyUnknown, FieldBlank
	}
	for tier, label := range difficultyLabels {
		if strings.EqualFold(raw, label) {
			return tier, FieldParsed
		}
	}
	return DifficultyUnknown, FieldUnparseable
}

func (d Difficulty) String() string {
	return difficultyLabels[d]
}

// Assessment is the parse result of the upcoming assessment flag.
type Assessment struct {
	State    FieldState
	Upcoming bool
}

// ParseAssessment accepts "Yes" and "No" case-insensitively. Any other
// non-blank text is unparseable and counts as no assessment.
func ParseAssessment(raw string) Assessment {
	switch {
	case raw == "":
		return Assessment{State: FieldBlank}
	case strings.EqualFold(raw, "Yes"):
		return Assessment{State: FieldParsed, Upcoming: true}
	case strings.EqualFold(raw, "No"):
		return Assessment{State: FieldParsed}
	default:
		return Assessment{State: FieldUnparseable}
	}
}

// NormalizeFields returns a SubjectCount x FieldCount copy of rows. Missing
// rows and fields become empty strings; surplus rows and fields are dropped.
func NormalizeFields(rows [][]string) [][]string {
	out := make([][]string, SubjectCount)
	for i := range out {
		out[i] = make([]string, FieldCount)
		if i >= len(rows) {
			continue
		}
		copy(out[i], rows[i])
	}
	return out
}

// NormalizeMinutes returns a DayCount-long copy of minutes, zero-filled.
func NormalizeMinutes(minutes []float64) []float64 {
	out := make([]float64, DayCount)
	copy(out, minutes)
	return out
}
