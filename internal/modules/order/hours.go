// README: Business-hours window evaluated in the storefront's fixed time zone.
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Hours is the storefront's opening window. Close is exclusive and may be
// 24. When Close <= Open the window runs past midnight into the next day.
type Hours struct {
	Days     [7]bool
	Open     int
	Close    int
	Location *time.Location
}

// NewHours builds a window from config values such as "tue-sun", 17, 24,
// "America/Sao_Paulo".
func NewHours(days string, open, close int, tz string) (Hours, error) {
	set, err := ParseDays(days)
	if err != nil {
		return Hours{}, err
	}
	if open < 0 || open > 23 {
		return Hours{}, fmt.Errorf("open hour %d out of range", open)
	}
	if close < 1 || close > 24 {
		return Hours{}, fmt.Errorf("close hour %d out of range", close)
	}
	if open == close {
		return Hours{}, errors.New("open and close hour must differ")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Hours{}, fmt.Errorf("load time zone %q: %w", tz, err)
	}
	return Hours{Days: set, Open: open, Close: close, Location: loc}, nil
}

// IsOpen reports whether t falls inside the window.
func (h Hours) IsOpen(t time.Time) bool {
	lt := t.In(h.Location)
	hr := lt.Hour()
	day := lt.Weekday()
	if h.Close > h.Open {
		return h.Days[day] && hr >= h.Open && hr < h.Close
	}
	if h.Days[day] && hr >= h.Open {
		return true
	}
	prev := (day + 6) % 7
	return h.Days[prev] && hr < h.Close
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	"dom": time.Sunday, "seg": time.Monday, "ter": time.Tuesday, "qua": time.Wednesday,
	"qui": time.Thursday, "sex": time.Friday, "sab": time.Saturday,
}

// ParseDays accepts comma separated days and wrapping ranges: "tue-sun",
// "mon,wed,fri", "fri-mon". English and Portuguese abbreviations work.
func ParseDays(spec string) ([7]bool, error) {
	var set [7]bool
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return set, errors.New("empty day list")
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, "-")
		start, err := lookupDay(from)
		if err != nil {
			return set, err
		}
		end := start
		if isRange {
			if end, err = lookupDay(to); err != nil {
				return set, err
			}
		}
		for d := start; ; d = (d + 1) % 7 {
			set[d] = true
			if d == end {
				break
			}
		}
	}
	return set, nil
}

func lookupDay(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if len(s) > 3 {
		s = s[:3]
	}
	d, ok := dayNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

type dayWords struct {
	names           [7]string
	all, none, only string
	from, to, and   string
}

var (
	ptDays = dayWords{
		names: [7]string{"domingo", "segunda", "terça", "quarta", "quinta", "sexta", "sábado"},
		all:   "todos os dias",
		none:  "sem dias de funcionamento",
		only:  "somente",
		from:  "de",
		to:    "a",
		and:   "e",
	}
	enDays = dayWords{
		names: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		all:   "every day",
		none:  "no opening days",
		only:  "only on",
		from:  "from",
		to:    "to",
		and:   "and",
	}
)

// Describe renders the window for customer-facing text, e.g.
// "de terça a domingo, das 17h às 24h".
func (h Hours) Describe() string {
	return fmt.Sprintf("%s, das %dh às %dh", h.describeDays(ptDays), h.Open, h.Close)
}

// DescribeEN is the English rendering: "from Tuesday to Sunday, 17:00-24:00".
func (h Hours) DescribeEN() string {
	return fmt.Sprintf("%s, %02d:00-%02d:00", h.describeDays(enDays), h.Open, h.Close)
}

func (h Hours) describeDays(w dayWords) string {
	var open []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if h.Days[d] {
			open = append(open, d)
		}
	}
	switch len(open) {
	case 0:
		return w.none
	case 7:
		return w.all
	case 1:
		return w.only + " " + w.names[open[0]]
	}
	// a single contiguous run (possibly wrapping past Saturday) reads as a range
	for _, start := range open {
		if h.Days[(start+6)%7] {
			continue
		}
		end := start
		for h.Days[(end+1)%7] {
			end = (end + 1) % 7
		}
		if runLength(start, end) == len(open) {
			return fmt.Sprintf("%s %s %s %s", w.from, w.names[start], w.to, w.names[end])
		}
		break
	}
	names := make([]string, len(open))
	for i, d := range open {
		names[i] = w.names[d]
	}
	return strings.Join(names[:len(names)-1], ", ") + " " + w.and + " " + names[len(names)-1]
}

func runLength(start, end time.Weekday) int {
	return int((end-start+7)%7) + 1
}
