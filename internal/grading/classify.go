package grading

// Academic class labels
const (
	ClassFirst       = "First Class"
	ClassSecondUpper = "Second Class (Upper)"
	ClassSecondLower = "Second Class (Lower)"
	ClassThird       = "Third Class"
	ClassPass        = "Pass"
	ClassFail        = "Fail"
)

const (
	colorFirstClass  = "#27ae60"
	colorSecondUpper = "#2ecc71"
	colorSecondLower = "#3498db"
	colorThirdClass  = "#f39c12"
	colorPass        = "#e67e22"
	colorFail        = "#e74c3c"
)

// Class is an honors tier with a stable presentation color.
type Class struct {
	Label string `json:"label"`
	Color string `json:"colorHint"`
}

type classRung struct {
	min   float64
	class Class
}

// Ladders are evaluated top-down; bounds are inclusive.
var (
	ladder4 = []classRung{
		{3.6, Class{ClassFirst, colorFirstClass}},
		{3.0, Class{ClassSecondUpper, colorSecondUpper}},
		{2.0, Class{ClassSecondLower, colorSecondLower}},
		{1.5, Class{ClassThird, colorThirdClass}},
		{1.0, Class{ClassPass, colorPass}},
	}
	ladder5 = []classRung{
		{4.5, Class{ClassFirst, colorFirstClass}},
		{3.5, Class{ClassSecondUpper, colorSecondUpper}},
		{2.5, Class{ClassSecondLower, colorSecondLower}},
		{2.0, Class{ClassThird, colorThirdClass}},
		{1.5, Class{ClassPass, colorPass}},
	}
)

// Classify maps a CGPA to its academic class on the given scale.
func Classify(cgpa float64, scale Scale) Class {
	ladder := ladder4
	if scale == Scale5 {
		ladder = ladder5
	}

	for _, rung := range ladder {
		if cgpa >= rung.min {
			return rung.class
		}
	}
	return Class{ClassFail, colorFail}
}
