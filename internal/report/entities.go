package report

import (
	"fmt"
	"strings"

	"github.com/username/hourly-report/internal/document"
)

// Worker is the employee the report is issued for
type Worker struct {
	name     string
	dni      string
	ssn      []string
	ssnRepr  string
	initials string
}

// NewWorker validates the worker documents and freezes the derived fields
func NewWorker(name, dni string, ssn []string) (*Worker, error) {
	if !document.IsValidDNI(dni) {
		return nil, &InvalidDocumentError{Type: document.TypeDNI, Value: dni}
	}
	if !document.IsValidSSN(ssn) {
		return nil, &InvalidDocumentError{Type: document.TypeSSN, Value: fmt.Sprint(ssn)}
	}

	return &Worker{
		name:     name,
		dni:      dni,
		ssn:      cloneStrings(ssn),
		ssnRepr:  strings.Join(ssn, " / "),
		initials: initials(name),
	}, nil
}

func (w *Worker) Name() string { return w.name }
func (w *Worker) DNI() string { return w.dni }
func (w *Worker) SSN() []string { return cloneStrings(w.ssn) }
func (w *Worker) SSNRepr() string { return w.ssnRepr }

// Initials returns the upper-cased first letter of every name token
func (w *Worker) Initials() string { return w.initials }

// Company is the employer the report is issued by
type Company struct {
	name      string
	workplace string
	cif       string
	ccc       []string
	cccRepr   string
}

// NewCompany validates the company documents and freezes the derived fields
func NewCompany(name, workplace, cif string, ccc []string) (*Company, error) {
	if !document.IsValidCIF(cif) {
		return nil, &InvalidDocumentError{Type: document.TypeCIF, Value: cif}
	}
	if !document.IsValidSSN(ccc) {
		return nil, &InvalidDocumentError{Type: document.TypeCCC, Value: fmt.Sprint(ccc)}
	}

	return &Company{
		name:      name,
		workplace: workplace,
		cif:       cif,
		ccc:       cloneStrings(ccc),
		cccRepr:   strings.Join(ccc, " / "),
	}, nil
}

func (c *Company) Name() string { return c.name }
func (c *Company) Workplace() string { return c.workplace }
func (c *Company) CIF() string { return c.cif }
func (c *Company) CCC() []string { return cloneStrings(c.ccc) }
func (c *Company) CCCRepr() string { return c.cccRepr }

// DatesOff holds the ISO weekdays and the day numbers that are not worked
type DatesOff struct {
	weekdays []int
	holidays []int
}

// NewDatesOff validates weekdays (1-7) and holidays (1-31). Either may be empty.
func NewDatesOff(weekdays, holidays []int) (*DatesOff, error) {
	for _, wd := range weekdays {
		if wd < 1 || wd > 7 {
			return nil, fmt.Errorf("%w: weekdays off not between 1 and 7: %v", ErrInvalidRange, weekdays)
		}
	}
	for _, d := range holidays {
		if d < 1 || d > 31 {
			return nil, fmt.Errorf("%w: holidays given are not between 1 and 31: %v", ErrInvalidRange, holidays)
		}
	}

	return &DatesOff{
		weekdays: cloneInts(weekdays),
		holidays: cloneInts(holidays),
	}, nil
}

func (d *DatesOff) Weekdays() []int { return cloneInts(d.weekdays) }
func (d *DatesOff) Holidays() []int { return cloneInts(d.holidays) }

// IsWeekdayOff reports whether the ISO weekday is a weekly day off
func (d *DatesOff) IsWeekdayOff(weekday int) bool {
	return containsInt(d.weekdays, weekday)
}

// IsHoliday reports whether the day of month is a holiday
func (d *DatesOff) IsHoliday(day int) bool {
	return containsInt(d.holidays, day)
}

func initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Split(name, " ") {
		if token == "" {
			continue
		}
		// first rune, not first byte, so accented names survive
		for _, r := range token {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
