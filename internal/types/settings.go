package types

// Theme is the display preference stored alongside the grading scale.
type Theme string

// Supported themes
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Supported grading scale ceilings
const (
	GradingScale4 = 4.0
	GradingScale5 = 5.0
)

// AppSettings holds the process-wide preferences.
type AppSettings struct {
	GradingScale float64 `json:"gradingScale"`
	Theme        Theme   `json:"theme"`
}

// DefaultSettings returns the settings used when nothing has been persisted yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		GradingScale: GradingScale4,
		Theme:        ThemeLight,
	}
}
