package daytime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aazevedo/nistsync/timeutil"
)

// An ITS reply looks like:
//
//	60471 24-06-01 14:23:05 50 0 0 123.4 UTC(NIST) *
//
// Field 0 is the modified Julian date, 1 the date, 2 the UTC time,
// 3-5 are DST/leap/health flags, 6 the advance the server applied in
// milliseconds. Everything after field 6 is ignored.
const minReplyFields = 7

// Parse converts a raw reply line into the UTC instant it encodes,
// millisecond precision. Malformed or calendar-impossible input returns
// a FormatError; Parse never guesses.
func Parse(reply string) (time.Time, error) {
	fields := strings.Fields(reply)
	if len(fields) < minReplyFields {
		return time.Time{}, &FormatError{
			Reason: fmt.Sprintf("expected at least %d fields, got %d", minReplyFields, len(fields)),
			Reply:  reply,
		}
	}

	date, clock := fields[1], fields[2]
	if len(date) != 8 || date[2] != '-' || date[5] != '-' {
		return time.Time{}, &FormatError{Reason: "date is not YY-MM-DD", Reply: reply}
	}
	if len(clock) != 8 || clock[2] != ':' || clock[5] != ':' {
		return time.Time{}, &FormatError{Reason: "time is not HH:MM:SS", Reply: reply}
	}

	year, err := atoiField(date[0:2], "year", reply)
	if err != nil {
		return time.Time{}, err
	}
	year += 2000 // the source's two-digit year always means 20YY

	month, err := atoiField(date[3:5], "month", reply)
	if err != nil {
		return time.Time{}, err
	}
	day, err := atoiField(date[6:8], "day", reply)
	if err != nil {
		return time.Time{}, err
	}
	hour, err := atoiField(clock[0:2], "hour", reply)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := atoiField(clock[3:5], "minute", reply)
	if err != nil {
		return time.Time{}, err
	}
	second, err := atoiField(clock[6:8], "second", reply)
	if err != nil {
		return time.Time{}, err
	}

	if !timeutil.ValidDate(year, time.Month(month), day) {
		return time.Time{}, &FormatError{
			Reason: fmt.Sprintf("invalid calendar date %02d-%02d", month, day),
			Reply:  reply,
		}
	}
	if !timeutil.ValidTimeOfDay(hour, minute, second) {
		return time.Time{}, &FormatError{
			Reason: fmt.Sprintf("invalid time of day %02d:%02d:%02d", hour, minute, second),
			Reply:  reply,
		}
	}

	advance, err := strconv.ParseFloat(fields[6], 64)
	if err != nil || advance < 0 {
		return time.Time{}, &FormatError{Reason: "millisecond advance is not a non-negative number", Reply: reply}
	}
	// Truncate fractional milliseconds toward zero.
	millis := time.Duration(int64(advance)) * time.Millisecond

	instant := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return instant.Add(millis), nil
}

func atoiField(s, name, reply string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &FormatError{Reason: "non-numeric " + name + " field", Reply: reply}
	}
	return n, nil
}
