package recurrence

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
)

// ErrEnumerationOverrun signals that enumeration hit the safety bound.
// It indicates a logic defect rather than a pathological rule; callers
// should treat it as a hard failure, never as a truncated result.
var ErrEnumerationOverrun = errors.New("recurrence enumeration exceeded iteration bound")

// maxEnumerationSteps caps the enumeration loop so a defective step can
// never hang a projection.
const maxEnumerationSteps = 100

// Enumerate returns, in ascending order, every date on which the rule
// falls due within [rangeStart, rangeEnd], both endpoints inclusive.
// It is a pure function: identical inputs always yield identical output.
//
// Inactive rules, rules starting after rangeEnd, and rules ending before
// rangeStart produce an empty result. Monthly and yearly occurrences
// clamp the anchor day to the target month's length; the clamp is
// recomputed from the anchor every step, so an anchor of 31 yields the
// 28th/29th/30th in shorter months and returns to the 31st afterwards.
func Enumerate(rule *Rule, rangeStart, rangeEnd civil.Date) ([]civil.Date, error) {
	if !rule.IsActive {
		return nil, nil
	}

	if rule.StartDate.After(rangeEnd) {
		return nil, nil
	}

	if rule.EndDate != nil && rule.EndDate.Before(rangeStart) {
		return nil, nil
	}

	// Fast-forward: jump the occurrence index to just before rangeStart
	// instead of stepping one by one from StartDate. Output is identical
	// to naive stepping plus filtering.
	idx := fastForward(rule, rangeStart)

	var out []civil.Date

	for step := 0; ; step++ {
		if step >= maxEnumerationSteps {
			return nil, ErrEnumerationOverrun
		}

		cur := occurrenceAt(rule, idx+step)

		if cur.After(rangeEnd) {
			break
		}

		if rule.EndDate != nil && cur.After(*rule.EndDate) {
			break
		}

		if !cur.Before(rangeStart) {
			out = append(out, cur)
		}
	}

	return out, nil
}

// occurrenceAt computes the n-th occurrence of the rule, counting from
// zero at StartDate. Deriving each occurrence from the index keeps the
// monthly/yearly anchor stable: the clamp never feeds back into the
// next step.
func occurrenceAt(rule *Rule, n int) civil.Date {
	start := rule.StartDate

	switch rule.Frequency {
	case FrequencyDaily:
		return start.AddDays(n)
	case FrequencyWeekly:
		return start.AddDays(7 * n)
	case FrequencyBiweekly:
		return start.AddDays(14 * n)
	case FrequencyMonthly:
		months := int(start.Month) - 1 + n
		year := start.Year + months/12
		month := time.Month(months%12 + 1)

		return clampDay(year, month, start.Day)
	case FrequencyYearly:
		return clampDay(start.Year+n, start.Month, start.Day)
	default:
		return start.AddDays(n)
	}
}

// fastForward returns the largest occurrence index that is still safe to
// start enumerating from: the occurrence at the returned index is never
// after the first in-range occurrence.
func fastForward(rule *Rule, rangeStart civil.Date) int {
	if !rule.StartDate.Before(rangeStart) {
		return 0
	}

	start := rule.StartDate
	days := rangeStart.DaysSince(start)

	switch rule.Frequency {
	case FrequencyDaily:
		return days
	case FrequencyWeekly:
		return days / 7
	case FrequencyBiweekly:
		return days / 14
	case FrequencyMonthly:
		months := (rangeStart.Year-start.Year)*12 + int(rangeStart.Month) - int(start.Month)
		if months < 0 {
			return 0
		}

		return months
	case FrequencyYearly:
		years := rangeStart.Year - start.Year
		if years < 0 {
			return 0
		}

		return years
	default:
		return 0
	}
}

func clampDay(year int, month time.Month, day int) civil.Date {
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return civil.Date{Year: year, Month: month, Day: day}
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
