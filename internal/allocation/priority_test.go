package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeWeight(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    float64
	}{
		{name: "gap clamped to three", current: "3", target: "7", want: 1.05},
		{name: "gap of one", current: "6", target: "7", want: 0.35},
		{name: "gap of two", current: "4", target: "6", want: 0.7},
		{name: "at target", current: "6", target: "6", want: MaintainWeight},
		{name: "above target", current: "7", target: "5", want: MaintainWeight},
		{name: "both blank", current: "", target: "", want: UnknownGradeWeight},
		{name: "current only", current: "5", target: "", want: PartialGradeWeight},
		{name: "target only", current: "", target: "6", want: PartialGradeWeight},
		{name: "garbage", current: "five", target: "6", want: PartialGradeWeight},
		{name: "padded number", current: " 5", target: "6", want: PartialGradeWeight},
		{name: "whitespace only", current: " ", target: "", want: PartialGradeWeight},
		{name: "target beyond int32", current: "1", target: "3000000000", want: PartialGradeWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GradeWeight(ParseGrade(tt.current), ParseGrade(tt.target))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseGrade(t *testing.T) {
	assert.Equal(t, Grade{State: FieldBlank}, ParseGrade(""))
	assert.Equal(t, Grade{State: FieldParsed, Value: 7}, ParseGrade("7"))
	assert.Equal(t, Grade{State: FieldParsed, Value: -2}, ParseGrade("-2"))
	assert.Equal(t, Grade{State: FieldUnparseable}, ParseGrade("6.5"))
	assert.Equal(t, Grade{State: FieldUnparseable}, ParseGrade("7 "))
	assert.Equal(t, Grade{State: FieldParsed, Value: 2147483647}, ParseGrade("2147483647"))
	assert.Equal(t, Grade{State: FieldUnparseable}, ParseGrade("2147483648"))
	assert.Equal(t, Grade{State: FieldParsed, Value: 5}, ParseGrade("+5"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelHigher, ParseLevel("HL"))
	assert.Equal(t, LevelHigher, ParseLevel("hl"))
	assert.Equal(t, LevelStandard, ParseLevel("SL"))
	assert.Equal(t, LevelStandard, ParseLevel("Foundation"))
	assert.Equal(t, LevelStandard, ParseLevel(" HL"))
	assert.Equal(t, LevelBlank, ParseLevel(""))
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		raw       string
		wantTier  Difficulty
		wantState FieldState
	}{
		{raw: "Very Hard", wantTier: DifficultyVeryHard, wantState: FieldParsed},
		{raw: "very hard", wantTier: DifficultyVeryHard, wantState: FieldParsed},
		{raw: "HARD", wantTier: DifficultyHard, wantState: FieldParsed},
		{raw: "Average", wantTier: DifficultyAverage, wantState: FieldParsed},
		{raw: "Easy", wantTier: DifficultyEasy, wantState: FieldParsed},
		{raw: "Very Easy", wantTier: DifficultyVeryEasy, wantState: FieldParsed},
		{raw: "", wantTier: DifficultyUnknown, wantState: FieldBlank},
		{raw: "Brutal", wantTier: DifficultyUnknown, wantState: FieldUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tier, state := ParseDifficulty(tt.raw)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestWeightTablesCoverEveryVariant(t *testing.T) {
	for _, level := range []Level{LevelBlank, LevelHigher, LevelStandard} {
		_, ok := levelWeights[level]
		assert.True(t, ok, "missing weight for level %d", level)
	}
	for tier := DifficultyUnknown; tier <= DifficultyVeryHard; tier++ {
		_, ok := difficultyWeights[tier]
		assert.True(t, ok, "missing weight for difficulty %d", tier)
	}
	for tier := range difficultyLabels {
		_, ok := difficultyWeights[tier]
		assert.True(t, ok, "labelled tier %s has no weight", tier)
	}
}

func TestParseAssessment(t *testing.T) {
	assert.True(t, ParseAssessment("Yes").Upcoming)
	assert.True(t, ParseAssessment("YES").Upcoming)
	assert.False(t, ParseAssessment("No").Upcoming)
	assert.Equal(t, FieldParsed, ParseAssessment("no").State)
	assert.Equal(t, FieldBlank, ParseAssessment("").State)

	unparseable := ParseAssessment("soon")
	assert.Equal(t, FieldUnparseable, unparseable.State)
	assert.False(t, unparseable.Upcoming)
}

func TestComputePriority(t *testing.T) {
	t.Run("all blank", func(t *testing.T) {
		b := ComputePriority(Subject{})
		assert.InDelta(t, 1.35, b.Priority, 1e-9)
		assert.InDelta(t, UnknownGradeWeight, b.GradeGap, 1e-9)
		assert.Zero(t, b.Level)
		assert.Zero(t, b.Assessment)
	})

	t.Run("every weight", func(t *testing.T) {
		b := ComputePriority(Subject{
			Level:              "HL",
			CurrentGrade:       "2",
			TargetGrade:        "7",
			UpcomingAssessment: "yes",
			Difficulty:         "Very Hard",
		})
		assert.InDelta(t, 0.7, b.Level, 1e-9)
		assert.InDelta(t, 1.05, b.GradeGap, 1e-9)
		assert.InDelta(t, AssessmentWeight, b.Assessment, 1e-9)
		assert.InDelta(t, 1.0, b.Difficulty, 1e-9)
		assert.InDelta(t, 4.55, b.Priority, 1e-9)
	})

	t.Run("never below floor", func(t *testing.T) {
		levels := []string{"", "HL", "SL", "x"}
		grades := []string{"", "1", "7", "?"}
		flags := []string{"", "Yes", "No"}
		difficulties := []string{"", "Very Easy", "Very Hard", "?"}
		for _, level := range levels {
			for _, current := range grades {
				for _, target := range grades {
					for _, flag := range flags {
						for _, difficulty := range difficulties {
							b := ComputePriority(Subject{
								Level:              level,
								CurrentGrade:       current,
								TargetGrade:        target,
								UpcomingAssessment: flag,
								Difficulty:         difficulty,
							})
							assert.GreaterOrEqual(t, b.Priority, MinPriority)
						}
					}
				}
			}
		}
	})
}
