package progress

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Formatos aceptados para fechas de calendario, en orden de preferencia.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate interpreta s como fecha de calendario. Con offset explícito se
// conserva la hora tal como está escrita, sin convertir a UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	return time.Time{}, false
}

// daysBetween devuelve (to - from) en días, con fracción.
func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
