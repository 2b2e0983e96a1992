package report

import (
	"fmt"
	"strings"

	"github.com/username/hourly-report/pkg/dateutil"
)

// Data is the month's report configuration plus every derived fact a
// template needs. It is immutable once built.
type Data struct {
	year         int
	month        int
	workingHours []int
	worker       *Worker
	company      *Company
	datesOff     *DatesOff

	monthName              string
	nextMonthRepr          string
	nextYear               int
	daysInMonth            int
	workingHoursRepr       string
	dailyWorkingHoursCount int
}

// New validates month and working hours and derives the report fields.
// workingHours is morning start, morning end, afternoon start, afternoon end.
func New(year, month int, workingHours []int, worker *Worker, company *Company, datesOff *DatesOff) (*Data, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: invalid month: %d", ErrInvalidRange, month)
	}
	if len(workingHours) != 4 {
		return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInvalidRange, workingHours)
	}
	for _, h := range workingHours {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInvalidRange, workingHours)
		}
	}
	if worker == nil || company == nil || datesOff == nil {
		return nil, fmt.Errorf("%w: worker, company and dates off are required", ErrMissingEntity)
	}

	hours := make([]string, len(workingHours))
	for i, h := range workingHours {
		hours[i] = dateutil.FormatHour(h)
	}

	return &Data{
		year:         year,
		month:        month,
		workingHours: cloneInts(workingHours),
		worker:       worker,
		company:      company,
		datesOff:     datesOff,

		monthName:              dateutil.MonthName(month),
		nextMonthRepr:          dateutil.NextMonthRepr(month),
		nextYear:               dateutil.NextYear(year, month),
		daysInMonth:            dateutil.DaysInMonth(year, month),
		workingHoursRepr:       strings.Join(hours, " & "),
		dailyWorkingHoursCount: workingHours[3] - workingHours[2] + workingHours[1] - workingHours[0],
	}, nil
}

func (d *Data) Year() int { return d.year }
func (d *Data) Month() int { return d.month }
func (d *Data) WorkingHours() []int { return cloneInts(d.workingHours) }
func (d *Data) Worker() *Worker { return d.worker }
func (d *Data) Company() *Company { return d.company }
func (d *Data) DatesOff() *DatesOff { return d.datesOff }
func (d *Data) MonthName() string { return d.monthName }
func (d *Data) NextMonthRepr() string { return d.nextMonthRepr }
func (d *Data) NextYear() int { return d.nextYear }
func (d *Data) DaysInMonth() int { return d.daysInMonth }
func (d *Data) WorkingHoursRepr() string { return d.workingHoursRepr }

// DailyWorkingHoursCount is the afternoon span plus the morning span
func (d *Data) DailyWorkingHoursCount() int { return d.dailyWorkingHoursCount }

// IsWorkingDay reports whether the day of the report month is worked.
// Holidays are checked before the date is built, so a listed holiday is
// never an error.
func (d *Data) IsWorkingDay(day int) (bool, error) {
	if d.datesOff.IsHoliday(day) {
		return false, nil
	}

	date, err := dateutil.Date(d.year, d.month, day)
	if err != nil {
		return false, err
	}

	if d.datesOff.IsWeekdayOff(dateutil.ISOWeekday(date)) {
		return false, nil
	}

	return true, nil
}

// FormatLine returns the table row for the day. Rows end with a LaTeX
// line break (two backslashes).
func (d *Data) FormatLine(day int) (string, error) {
	working, err := d.IsWorkingDay(day)
	if err != nil {
		return "", err
	}

	if working {
		return fmt.Sprintf("%d & %s & %d & 0 & %s \\\\",
			day, d.workingHoursRepr, d.dailyWorkingHoursCount, d.worker.Initials()), nil
	}
	return fmt.Sprintf("%d & & & & & & & \\\\", day), nil
}

// Days returns 1..DaysInMonth
func (d *Data) Days() []int {
	days := make([]int, d.daysInMonth)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// Lines returns the formatted row for every day of the month
func (d *Data) Lines() []string {
	lines := make([]string, 0, d.daysInMonth)
	for _, day := range d.Days() {
		// every day in Days is a valid calendar date
		line, _ := d.FormatLine(day)
		lines = append(lines, line)
	}
	return lines
}

// WorkingDays counts the worked days of the month
func (d *Data) WorkingDays() int {
	count := 0
	for _, day := range d.Days() {
		if ok, _ := d.IsWorkingDay(day); ok {
			count++
		}
	}
	return count
}

// TotalWorkingHours is the daily count times the number of worked days
func (d *Data) TotalWorkingHours() int {
	return d.dailyWorkingHoursCount * d.WorkingDays()
}
