package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPercent renders a percentage with one decimal, e.g. "69.8%".
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// FormatArea renders an area in square kilometres, e.g. "4.5 km²".
func FormatArea(v float64) string {
	return printer.Sprintf("%.1f km²", v)
}

// FormatDistance renders a distance in metres, e.g. "2,066.7 m".
func FormatDistance(v float64) string {
	return printer.Sprintf("%.1f m", v)
}
