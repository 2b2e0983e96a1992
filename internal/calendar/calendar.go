package calendar

import (
	"time"

	"github.com/username/hourly-report/internal/report"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Line         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int
	Month        time.Month
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int
	Holidays     int
	Days         []DayInfo
}

// BuildMonth classifies every day of the report month. Whether a day is
// worked comes from the report data; days off are labelled holiday when
// listed as one, weekend otherwise.
func BuildMonth(data *report.Data) *MonthInfo {
	off := data.DatesOff()

	monthInfo := &MonthInfo{
		Year:  data.Year(),
		Month: time.Month(data.Month()),
		Days:  make([]DayInfo, 0, data.DaysInMonth()),
	}

	for _, day := range data.Days() {
		date := time.Date(data.Year(), time.Month(data.Month()), day, 0, 0, 0, 0, time.UTC)
		// every day in Days is a valid calendar date
		working, _ := data.IsWorkingDay(day)
		line, _ := data.FormatLine(day)

		info := DayInfo{Date: date, IsWorkday: working, Line: line}

		switch {
		case working:
			info.Type = DayTypeWorkday
			info.WorkingHours = data.DailyWorkingHoursCount()
			monthInfo.WorkDays++
		case off.IsHoliday(day):
			info.Type = DayTypeHoliday
			monthInfo.Holidays++
		default:
			info.Type = DayTypeWeekend
			monthInfo.Weekends++
		}

		monthInfo.WorkingHours += info.WorkingHours
		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo
}
