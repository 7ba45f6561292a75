package enum

import "encoding/json"

// Theme is the UI colour scheme stored with the remembered session
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) String() string {
	return string(t)
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t *Theme) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if Theme(str) == ThemeDark {
		*t = ThemeDark
	} else {
		*t = ThemeLight
	}
	return nil
}
