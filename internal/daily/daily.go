// internal/daily/daily.go
//
// Deterministic daily target selection.
// Responsibilities:
//   - Date: a UTC calendar day, the only input the daily puzzle depends on.
//   - Seed: integer derived from (year, month, day).
//   - SelectTarget: seed → pseudo-random index into the catalog.
//
// Selection must agree with the deployed web instance, which derives its
// index from frac(sin(seed)*10000). math.Sin is a transcendental, so
// bit-for-bit parity across libm implementations is not guaranteed; in
// practice the index only changes if the fractional part lands within a
// few ulps of a 1/len(catalog) boundary.

package daily

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kongdle/go-server/internal/catalog"
)

// ErrEmptyCatalog is returned when there is nothing to select from.
var ErrEmptyCatalog = errors.New("daily: empty catalog")

// Date is a UTC calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a time to its UTC calendar day.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Seed returns the selection seed: year*10000 + month*100 + day.
// One seed per calendar day.
func (d Date) Seed() int {
	return d.Year*10000 + int(d.Month)*100 + d.Day
}

// Key returns YYYY-MM-DD, used for stats bookkeeping.
func (d Date) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Previous returns the calendar day before d.
func (d Date) Previous() Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return DateOf(t)
}

// SelectTarget picks the day's target entry. Pure: the same (catalog, date)
// pair always yields the same entry.
func SelectTarget(cat catalog.Catalog, d Date) (catalog.Entry, error) {
	if len(cat) == 0 {
		return catalog.Entry{}, ErrEmptyCatalog
	}
	x := math.Sin(float64(d.Seed())) * 10000
	frac := x - math.Floor(x)
	idx := int(math.Floor(frac*float64(len(cat)))) % len(cat)
	return cat[idx], nil
}

// Clock supplies "today" so date-dependent logic is testable.
type Clock interface {
	Today() Date
}

// SystemClock reads the real UTC date.
type SystemClock struct{}

func (SystemClock) Today() Date { return DateOf(time.Now()) }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() Date

func (f ClockFunc) Today() Date { return f() }
