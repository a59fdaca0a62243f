// Package ics loads events from iCalendar files into the calendar's
// event index. Files are only read; the organizer never writes them.
package ics

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/nhle/organizer/internal/model"
	"github.com/nhle/organizer/internal/organizer"
)

const defaultMaxOccurrences = 500

// Options controls how VEVENTs become organizer events.
type Options struct {
	// Category is assigned to every imported event. Empty means the
	// index's default category.
	Category model.Category

	// Location is the display timezone. Nil means time.Local.
	Location *time.Location

	// RangeStart and RangeEnd bound recurrence expansion. Single events
	// outside the range are still imported.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrences caps the expansion of one recurring event.
	MaxOccurrences int
}

// DefaultOptions expands recurrences over the year on either side of now.
func DefaultOptions(now time.Time, category model.Category) Options {
	return Options{
		Category:       category,
		Location:       now.Location(),
		RangeStart:     organizer.StartOfMonth(now).AddDate(-1, 0, 0),
		RangeEnd:       organizer.StartOfMonth(now).AddDate(1, 1, 0),
		MaxOccurrences: defaultMaxOccurrences,
	}
}

// vevent is the subset of a VEVENT the organizer cares about.
type vevent struct {
	uid     string
	summary string
	start   time.Time
	allDay  bool
	rrule   string
	exDates []time.Time
}

// ParseFile parses one .ics file.
func ParseFile(path string, opts Options) ([]organizer.EventInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar %s: %w", path, err)
	}
	defer f.Close()

	inputs, err := Parse(path, f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", path, err)
	}
	return inputs, nil
}

// Parse converts an iCalendar stream into event inputs. Recurring events
// yield one input per occurrence inside the options' range. VEVENTs that
// cannot be understood are logged and skipped.
func Parse(source string, r io.Reader, opts Options) ([]organizer.EventInput, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxOccurrences <= 0 {
		opts.MaxOccurrences = defaultMaxOccurrences
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	var out []organizer.EventInput
	for _, comp := range cal.Events() {
		ev, err := parseVEvent(comp, opts.Location)
		if err != nil {
			log.Printf("ics: skipping event in %s: %v", source, err)
			continue
		}

		starts, err := occurrences(ev, opts)
		if err != nil {
			log.Printf("ics: skipping event %s in %s: %v", ev.uid, source, err)
			continue
		}

		for _, start := range starts {
			in := organizer.EventInput{
				Title:    ev.summary,
				Date:     start,
				Category: opts.Category,
				Source:   source,
			}
			if !ev.allDay {
				c := model.ClockOf(start)
				in.Time = &c
			}
			out = append(out, in)
		}
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (vevent, error) {
	var out vevent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.uid = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.summary = strings.TrimSpace(p.Value)
	}
	if out.summary == "" {
		return out, errors.New("missing SUMMARY")
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, errors.New("missing DTSTART")
	}

	start, allDay, err := parseICSTime(dtStart.Value, dtStart.ICalParameters, loc)
	if err != nil {
		return out, fmt.Errorf("DTSTART: %w", err)
	}
	out.start = start
	out.allDay = allDay

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.rrule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, _, err := parseICSTime(part, p.ICalParameters, loc); err == nil {
				out.exDates = append(out.exDates, t)
			}
		}
	}

	return out, nil
}

// occurrences returns the start of every instance of ev, converted to
// the display location.
func occurrences(ev vevent, opts Options) ([]time.Time, error) {
	if ev.rrule == "" {
		return []time.Time{ev.start.In(opts.Location)}, nil
	}

	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		return nil, fmt.Errorf("RRULE %q: %w", ev.rrule, err)
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	times := set.Between(
		opts.RangeStart.In(ev.start.Location()),
		opts.RangeEnd.In(ev.start.Location()),
		true,
	)
	if len(times) > opts.MaxOccurrences {
		log.Printf("ics: truncating %s to %d occurrences", ev.uid, opts.MaxOccurrences)
		times = times[:opts.MaxOccurrences]
	}

	out := make([]time.Time, len(times))
	for i, t := range times {
		if ev.allDay {
			// All-day instances keep their calendar date whatever the zone.
			y, m, d := t.Date()
			out[i] = time.Date(y, m, d, 0, 0, 0, 0, opts.Location)
			continue
		}
		out[i] = t.In(opts.Location)
	}
	return out, nil
}

// parseICSTime handles the DATE, floating DATE-TIME, UTC DATE-TIME and
// TZID-qualified DATE-TIME forms. It reports whether the value is a
// bare date.
func parseICSTime(v string, params map[string][]string, loc *time.Location) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false, errors.New("empty time value")
	}

	if tz := firstParam(params, "TZID"); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	isDate := strings.EqualFold(firstParam(params, "VALUE"), "DATE") || !strings.Contains(v, "T")
	if isDate {
		t, err := time.ParseInLocation("20060102", v, loc)
		return t, true, err
	}

	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse("20060102T150405Z", v)
		return t, false, err
	}

	t, err := time.ParseInLocation("20060102T150405", v, loc)
	return t, false, err
}

func firstParam(params map[string][]string, name string) string {
	if vs, ok := params[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}
