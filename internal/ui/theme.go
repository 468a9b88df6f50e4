package ui

import (
	"os"
	"sync"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes or completed operations.
	Success string
	// Warning is used for caution messages or non-critical issues.
	Warning string
	// Error indicates failures or critical issues.
	Error string
	// Info is used for informational messages.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	// Uses bright, vibrant colors for good contrast.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme used throughout the application.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// InitTheme selects the active theme. Color output is disabled when noColor
// is true or the NO_COLOR environment variable is set (https://no-color.org).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if noColor || os.Getenv("NO_COLOR") != "" {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// SetTheme replaces the active theme.
func SetTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

func active() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// ColorPrimary returns the escape code for the primary accent color.
func ColorPrimary() string { return active().Primary }

// ColorSecondary returns the escape code for secondary elements.
func ColorSecondary() string { return active().Secondary }

// ColorSuccess returns the escape code for success output.
func ColorSuccess() string { return active().Success }

// ColorWarning returns the escape code for warnings.
func ColorWarning() string { return active().Warning }

// ColorError returns the escape code for errors.
func ColorError() string { return active().Error }

// ColorInfo returns the escape code for informational output.
func ColorInfo() string { return active().Info }

// Bold returns the escape code for bold text.
func Bold() string { return active().Bold }

// Underline returns the escape code for underlined text.
func Underline() string { return active().Underline }

// ColorReset returns the escape code that clears all formatting.
func ColorReset() string { return active().Reset }
