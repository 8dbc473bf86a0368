package grading

// Goal difficulty tiers
const (
	DifficultyRealistic     = "Realistic"
	DifficultyChallenging   = "Challenging"
	DifficultyVeryDifficult = "Very Difficult"
	DifficultyImpossible    = "Impossible"
)

// Tier thresholds as fractions of the scale ceiling
const (
	challengingFraction   = 0.75
	veryDifficultFraction = 0.9
)

// Goal is a projection classified against the active scale.
type Goal struct {
	Required   float64 `json:"requiredGPA"`
	Difficulty string  `json:"difficulty"`
	Color      string  `json:"color"`
	Achievable bool    `json:"achievable"`
}

// RequiredGPA solves the weighted-average identity for the GPA needed over the remaining
// credits to finish at targetCGPA:
//
//	target*(current+remaining) = cgpa*current + x*remaining
//
// The result is not clamped: above the ceiling means unreachable, below zero means the
// target is already exceeded. Returns 0 when remainingCredits <= 0.
func RequiredGPA(currentCGPA, currentCredits, targetCGPA, remainingCredits float64) float64 {
	if remainingCredits <= 0 {
		return 0
	}

	totalPointsNeeded := targetCGPA * (currentCredits + remainingCredits)
	currentPoints := currentCGPA * currentCredits
	return (totalPointsNeeded - currentPoints) / remainingCredits
}

// AssessGoal classifies a required GPA against the scale ceiling.
func AssessGoal(required float64, scale Scale) Goal {
	ceiling := scale.Ceiling()
	g := Goal{
		Required:   required,
		Difficulty: DifficultyRealistic,
		Color:      colorFirstClass,
		Achievable: required <= ceiling,
	}

	switch {
	case required > ceiling:
		g.Difficulty, g.Color = DifficultyImpossible, colorFail
	case required > ceiling*veryDifficultFraction:
		g.Difficulty, g.Color = DifficultyVeryDifficult, colorPass
	case required > ceiling*challengingFraction:
		g.Difficulty, g.Color = DifficultyChallenging, colorThirdClass
	}

	return g
}
