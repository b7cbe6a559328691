package tui

import (
	"strings"

	darkmode "github.com/thiagokokada/dark-mode-go"
)

// ThemePreference selects the color palette.
type ThemePreference int

const (
	ThemeAuto ThemePreference = iota
	ThemeLight
	ThemeDark
)

func (p ThemePreference) String() string {
	switch p {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// ThemePreferenceFromString parses a -mode flag value; unknown values
// fall back to auto.
func ThemePreferenceFromString(raw string) ThemePreference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeLight.String():
		return ThemeLight
	case ThemeDark.String():
		return ThemeDark
	default:
		return ThemeAuto
	}
}

type colorPalette struct {
	Dark bool

	Node        string
	NodeWorking string
	NodeOld     string
	Lane        string
	ChangeID    string
	Author      string
	Timestamp   string
	Bookmark    string
	Description string
	Dim         string
	Selection   string
	StatusOK    string
	StatusErr   string
	DiffAdd     string
	DiffDel     string
	DiffHeader  string
}

var (
	lightPalette = colorPalette{
		Dark:        false,
		Node:        "#111111",
		NodeWorking: "#00aa00",
		NodeOld:     "#0055cc",
		Lane:        "#8a8a8a",
		ChangeID:    "#aa00aa",
		Author:      "#c9a300",
		Timestamp:   "#0087af",
		Bookmark:    "#aa00aa",
		Description: "#111111",
		Dim:         "#8a8a8a",
		Selection:   "#cfe7ff",
		StatusOK:    "#00aa00",
		StatusErr:   "#cc0000",
		DiffAdd:     "#00aa00",
		DiffDel:     "#cc0000",
		DiffHeader:  "#0055cc",
	}
	darkPalette = colorPalette{
		Dark:        true,
		Node:        "#eaeaea",
		NodeWorking: "#00ff00",
		NodeOld:     "#4fa3ff",
		Lane:        "#6b6b6b",
		ChangeID:    "#d56bff",
		Author:      "#b58900",
		Timestamp:   "#5fd7ff",
		Bookmark:    "#d56bff",
		Description: "#eaeaea",
		Dim:         "#6b6b6b",
		Selection:   "#253446",
		StatusOK:    "#00ff00",
		StatusErr:   "#ff5c5c",
		DiffAdd:     "#00ff00",
		DiffDel:     "#ff5c5c",
		DiffHeader:  "#4fa3ff",
	}
	detectDarkMode = darkmode.IsDarkMode
)

// paletteFor resolves the preference into a concrete palette. Auto asks
// the desktop environment and falls back to dark when detection fails.
func paletteFor(pref ThemePreference) colorPalette {
	switch pref {
	case ThemeLight:
		return lightPalette
	case ThemeDark:
		return darkPalette
	}
	dark, err := detectDarkMode()
	if err != nil {
		return darkPalette
	}
	if dark {
		return darkPalette
	}
	return lightPalette
}
