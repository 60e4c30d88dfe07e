package allocation

import "math"

// Priority weights.
const (
	BasePriority = 1.0
	MinPriority  = BasePriority * 0.25

	AssessmentWeight = 0.8

	GradeGapMultiplier = 0.35
	MaxGradeGap        = 3
	MaintainWeight     = 0.15
	PartialGradeWeight = 0.15
	UnknownGradeWeight = 0.25
)

var levelWeights = map[Level]float64{
	LevelBlank:    0,
	LevelHigher:   0.7,
	LevelStandard: 0.2,
}

var difficultyWeights = map[Difficulty]float64{
	DifficultyUnknown:  0.1,
	DifficultyVeryEasy: 0.1,
	DifficultyEasy:     0.25,
	DifficultyAverage:  0.45,
	DifficultyHard:     0.7,
	DifficultyVeryHard: 1.0,
}

// Breakdown records each weight that went into a subject's priority.
type Breakdown struct {
	Base       float64 `json:"base"`
	Level      float64 `json:"level"`
	GradeGap   float64 `json:"grade_gap"`
	Assessment float64 `json:"assessment"`
	Difficulty float64 `json:"difficulty"`
	Priority   float64 `json:"priority"`
}

// ComputePriority scores a subject. The result is never below MinPriority.
func ComputePriority(s Subject) Breakdown {
	difficulty, _ := ParseDifficulty(s.Difficulty)

	b := Breakdown{
		Base:       BasePriority,
		Level:      levelWeights[ParseLevel(s.Level)],
		GradeGap:   GradeWeight(ParseGrade(s.CurrentGrade), ParseGrade(s.TargetGrade)),
		Difficulty: difficultyWeights[difficulty],
	}
	if ParseAssessment(s.UpcomingAssessment).Upcoming {
		b.Assessment = AssessmentWeight
	}

	sum := b.Base + b.Level + b.GradeGap + b.Assessment + b.Difficulty
	b.Priority = math.Max(sum, MinPriority)
	return b
}

// GradeWeight scores the distance between a current and target grade.
func GradeWeight(current, target Grade) float64 {
	if current.State == FieldParsed && target.State == FieldParsed {
		gap := target.Value - current.Value
		if gap > 0 {
			return float64(min(gap, MaxGradeGap)) * GradeGapMultiplier
		}
		// already at or above target
		return MaintainWeight
	}
	if current.State != FieldBlank || target.State != FieldBlank {
		return PartialGradeWeight
	}
	return UnknownGradeWeight
}
