package calendar

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/username/hourly-report/pkg/dateutil"
	"go.uber.org/zap"
)

// Holiday is a single dated entry of a holiday file. Date is always
// midnight in the zone it was written in.
type Holiday struct {
	Date time.Time
	Note string
}

// HolidayFile holds holidays loaded from a local text file
type HolidayFile struct {
	filePath string
	logger   *zap.Logger
	data     map[string][]Holiday // key: "YYYY-MM"
}

// NewHolidayFile creates a new HolidayFile instance
func NewHolidayFile(filePath string, logger *zap.Logger) *HolidayFile {
	return &HolidayFile{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]Holiday),
	}
}

// Load loads holidays from file
func (hf *HolidayFile) Load() error {
	file, err := os.Open(hf.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	count := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note]
		// Example: 2020-10-12 Fiesta Nacional de España
		// RFC 3339 timestamps are accepted and truncated to their day
		parts := strings.SplitN(line, " ", 2)
		note := ""
		if len(parts) == 2 {
			note = strings.TrimSpace(parts[1])
		}

		date, err := dateutil.ParseDate(parts[0])
		if err != nil {
			hf.logger.Warn("Failed to parse holiday date", zap.String("line", line), zap.Error(err))
			continue
		}

		date = dateutil.StartOfDay(date)
		key := monthKey(date.Year(), int(date.Month()))
		hf.data[key] = append(hf.data[key], Holiday{Date: date, Note: note})
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	hf.logger.Info("Holiday file loaded",
		zap.String("file", hf.filePath),
		zap.Int("holidays", count),
		zap.Int("months", len(hf.data)))

	return nil
}

// Holidays returns the entries listed for the month in date order. Entries
// sharing a day are all kept.
func (hf *HolidayFile) Holidays(year, month int) []Holiday {
	holidays := append([]Holiday{}, hf.data[monthKey(year, month)]...)
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// HolidaysFor returns the sorted, de-duplicated day numbers listed for the month
func (hf *HolidayFile) HolidaysFor(year, month int) []int {
	seen := make(map[int]bool)
	days := []int{}

	for _, h := range hf.Holidays(year, month) {
		day := h.Date.Day()
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}

	sort.Ints(days)
	return days
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}
