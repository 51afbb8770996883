// Package clock provides the monotonic and wall-clock time provider the
// core reads from. No core component reads time.Now directly; every
// time-dependent operation takes a Clock so tests can pin "now" and the
// scheduling zone without races.
package clock

import "time"

// Clock is the injectable time source. Zone returns the single fixed local
// offset (the deployment's scheduling_zone, see config.Config) applied at
// generation and reporting.
type Clock interface {
	Now() time.Time
	Zone() *time.Location
}

// System is the production Clock, backed by time.Now and a resolved
// *time.Location loaded once at process start.
type System struct {
	loc *time.Location
}

// NewSystem builds a System clock pinned to loc. Pass time.UTC if no
// scheduling_zone is configured.
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc}
}

func (s System) Now() time.Time        { return time.Now().UTC() }
func (s System) Zone() *time.Location  { return s.loc }

// Fixed is a deterministic Clock for tests: Now always returns the same
// instant until advanced.
type Fixed struct {
	now time.Time
	loc *time.Location
}

// NewFixed builds a Fixed clock at now, in loc (UTC if nil).
func NewFixed(now time.Time, loc *time.Location) *Fixed {
	if loc == nil {
		loc = time.UTC
	}
	return &Fixed{now: now.UTC(), loc: loc}
}

func (f *Fixed) Now() time.Time       { return f.now }
func (f *Fixed) Zone() *time.Location { return f.loc }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.now = f.now.Add(d) }

// Set pins the fixed clock to t.
func (f *Fixed) Set(t time.Time) { f.now = t.UTC() }

// LocalDate renders t as a YYYY-MM-DD date string in the clock's zone, the
// external date representation used throughout §6.
func LocalDate(c Clock, t time.Time) string {
	return t.In(c.Zone()).Format("2006-01-02")
}

// DayBounds returns the [start, end) UTC instants of the local calendar
// date named by dateStr ("YYYY-MM-DD") in the clock's zone.
func DayBounds(c Clock, dateStr string) (start, end time.Time, err error) {
	local, err := time.ParseInLocation("2006-01-02", dateStr, c.Zone())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = local.UTC()
	end = local.AddDate(0, 0, 1).UTC()
	return start, end, nil
}

// TimeOfDay combines a "YYYY-MM-DD" date and an "HH:MM" time of day, both
// in the clock's zone, into a single UTC instant — how the working window
// bounds in §6's generate request are resolved.
func TimeOfDay(c Clock, dateStr, hhmm string) (time.Time, error) {
	local, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+hhmm, c.Zone())
	if err != nil {
		return time.Time{}, err
	}
	return local.UTC(), nil
}
