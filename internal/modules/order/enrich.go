// README: Computed order fields: order number, localized timestamp, scheduling flag.
package order

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout renders HH:mm - dd/MM/yy.
const TimestampLayout = "15:04 - 02/01/06"

const schedulePhrase = "agendado para"

var orderNumberRe = regexp.MustCompile(`#(\d{4})$`)

// ExtractOrderNumber reads a trailing "#NNNN" marker from a customer name.
func ExtractOrderNumber(name string) (int, bool) {
	m := orderNumberRe.FindStringSubmatch(strings.TrimRight(name, " \t"))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsScheduled reports whether a closed-store order was explicitly booked for later.
func IsScheduled(o Order, open bool) bool {
	return !open && strings.Contains(strings.ToLower(o.Note), schedulePhrase)
}

// Enricher stamps computed fields onto parsed orders.
type Enricher struct {
	loc *time.Location
	now func() time.Time
}

func NewEnricher(loc *time.Location, now func() time.Time) *Enricher {
	if now == nil {
		now = time.Now
	}
	return &Enricher{loc: loc, now: now}
}

// Enrich sets numero_pedido from the name marker (the name itself is kept
// as is) and overwrites datahora with the current local time. A caller
// supplied order number survives when the name has no marker.
func (e *Enricher) Enrich(o Order) Order {
	if n, ok := ExtractOrderNumber(o.Name); ok {
		o.OrderNumber = &n
	}
	o.Timestamp = e.now().In(e.loc).Format(TimestampLayout)
	return o
}
