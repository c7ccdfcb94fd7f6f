package view

import (
	"fmt"
	"strconv"
	"time"
)

// Format carries the display settings shared by every view.
type Format struct {
	DateLayout string
	Currency   string
	Location   *time.Location
}

// DefaultFormat matches the configuration defaults.
func DefaultFormat() Format {
	return Format{DateLayout: "02/01/06 15:04", Currency: "€", Location: time.Local}
}

func (f Format) loc() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// Money renders an amount with the currency symbol.
func (f Format) Money(amount int64) string {
	return f.Currency + strconv.FormatInt(amount, 10)
}

// Input renders t the way the form expects it to be typed.
func (f Format) Input(t time.Time) string {
	return t.In(f.loc()).Format(f.DateLayout)
}

// ParseInput parses a typed date in the configured location.
func (f Format) ParseInput(s string) (time.Time, error) {
	return time.ParseInLocation(f.DateLayout, s, f.loc())
}

// Day renders the short day label, e.g. "MAR 18".
func (f Format) Day(t time.Time) string {
	return t.In(f.loc()).Format("Jan 02")
}

// Clock renders the time of day.
func (f Format) Clock(t time.Time) string {
	return t.In(f.loc()).Format("15:04")
}

// Duration renders a time window as "30M", "02H 05M" or "01D 02H 05M".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Minutes())
	days, hours, minutes := total/(24*60), total/60%24, total%60
	switch {
	case days > 0:
		return fmt.Sprintf("%02dD %02dH %02dM", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%02dH %02dM", hours, minutes)
	default:
		return fmt.Sprintf("%02dM", minutes)
	}
}
