package engine

import "readiness/internal/readiness/models"

// Color is re-exported so engine callers need not import models for it.
type Color = models.Color

const (
	Gray   = models.Gray
	Green  = models.Green
	Yellow = models.Yellow
	Red    = models.Red
)

// Aggregate returns the worst of colors. Gray is the lowest value, so it only
// survives when nothing else is present, and an empty input is gray.
func Aggregate(colors ...Color) Color {
	worst := Gray
	for _, c := range colors {
		if c > worst {
			worst = c
		}
	}
	return worst
}

func itemColors(sections []models.Section) []Color {
	var out []Color
	for _, s := range sections {
		for _, item := range s.Items {
			out = append(out, item.Color)
		}
	}
	return out
}
