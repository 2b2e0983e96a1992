package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hourly-report/internal/document"
	"github.com/username/hourly-report/pkg/dateutil"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()
	w, err := NewWorker("The Guy", "12345678A", []string{"08", "12345678", "15"})
	require.NoError(t, err)
	return w
}

func newTestCompany(t *testing.T) *Company {
	t.Helper()
	c, err := NewCompany("The Boss", "Home", "A12345678", []string{"08", "12345678", "15"})
	require.NoError(t, err)
	return c
}

func newTestDatesOff(t *testing.T) *DatesOff {
	t.Helper()
	d, err := NewDatesOff([]int{6, 7}, []int{11, 24})
	require.NoError(t, err)
	return d
}

func newTestData(t *testing.T) *Data {
	t.Helper()
	d, err := New(2020, 9, []int{9, 13, 14, 18}, newTestWorker(t), newTestCompany(t), newTestDatesOff(t))
	require.NoError(t, err)
	return d
}

func TestNewWorker(t *testing.T) {
	w := newTestWorker(t)

	assert.Equal(t, "The Guy", w.Name())
	assert.Equal(t, "12345678A", w.DNI())
	assert.Equal(t, []string{"08", "12345678", "15"}, w.SSN())
	assert.Equal(t, "08 / 12345678 / 15", w.SSNRepr())
	assert.Equal(t, "TG", w.Initials())

	t.Run("invalid dni", func(t *testing.T) {
		w, err := NewWorker("The Guy", "112345678A", []string{"08", "12345678", "15"})
		assert.Nil(t, w)
		require.ErrorIs(t, err, ErrInvalidDocument)

		var docErr *InvalidDocumentError
		require.True(t, errors.As(err, &docErr))
		assert.Equal(t, document.TypeDNI, docErr.Type)
		assert.Equal(t, "112345678A", docErr.Value)
	})

	t.Run("invalid social security number", func(t *testing.T) {
		w, err := NewWorker("The Guy", "12345678A", []string{"08", "123", "15"})
		assert.Nil(t, w)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("initials of lower-case and accented names", func(t *testing.T) {
		w, err := NewWorker("álvaro de la torre", "1234567Z", []string{"28", "1234567", "01"})
		require.NoError(t, err)
		assert.Equal(t, "ÁDLT", w.Initials())
	})
}

func TestWorkerSSNIsCopied(t *testing.T) {
	ssn := []string{"08", "12345678", "15"}
	w, err := NewWorker("The Guy", "12345678A", ssn)
	require.NoError(t, err)

	ssn[0] = "99"
	got := w.SSN()
	got[1] = "00000000"

	assert.Equal(t, []string{"08", "12345678", "15"}, w.SSN())
}

func TestNewCompany(t *testing.T) {
	c := newTestCompany(t)

	assert.Equal(t, "The Boss", c.Name())
	assert.Equal(t, "Home", c.Workplace())
	assert.Equal(t, "A12345678", c.CIF())
	assert.Equal(t, []string{"08", "12345678", "15"}, c.CCC())
	assert.Equal(t, "08 / 12345678 / 15", c.CCCRepr())

	_, err := NewCompany("The Boss", "Home", "A123456778", []string{"08", "12345678", "15"})
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = NewCompany("The Boss", "Home", "A12345678", []string{"081", "12345678", "15"})
	var docErr *InvalidDocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, document.TypeCCC, docErr.Type)
}

func TestNewDatesOff(t *testing.T) {
	d := newTestDatesOff(t)
	assert.Equal(t, []int{6, 7}, d.Weekdays())
	assert.Equal(t, []int{11, 24}, d.Holidays())

	d, err := NewDatesOff(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, d.Weekdays())
	assert.Empty(t, d.Holidays())

	d, err = NewDatesOff([]int{1, 6}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6}, d.Weekdays())
	assert.Empty(t, d.Holidays())

	d, err = NewDatesOff(nil, []int{6, 8, 25, 26})
	require.NoError(t, err)
	assert.Empty(t, d.Weekdays())
	assert.Equal(t, []int{6, 8, 25, 26}, d.Holidays())

	_, err = NewDatesOff([]int{15}, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDatesOff([]int{0}, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDatesOff(nil, []int{40})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewDatesOff(nil, []int{0})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNew(t *testing.T) {
	worker := newTestWorker(t)
	company := newTestCompany(t)
	datesOff := newTestDatesOff(t)

	d, err := New(2020, 9, []int{9, 13, 14, 18}, worker, company, datesOff)
	require.NoError(t, err)

	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, 9, d.Month())
	assert.Equal(t, 30, d.DaysInMonth())
	assert.Equal(t, []int{9, 13, 14, 18}, d.WorkingHours())
	assert.Same(t, worker, d.Worker())
	assert.Same(t, company, d.Company())
	assert.Same(t, datesOff, d.DatesOff())
	assert.Equal(t, "Septiembre", d.MonthName())
	assert.Equal(t, "09:00 & 13:00 & 14:00 & 18:00", d.WorkingHoursRepr())
	assert.Equal(t, 8, d.DailyWorkingHoursCount())
	assert.Equal(t, "octubre", d.NextMonthRepr())
	assert.Equal(t, 2020, d.NextYear())
}

func TestNew_December(t *testing.T) {
	d, err := New(2020, 12, []int{8, 14, 15, 17}, newTestWorker(t), newTestCompany(t), newTestDatesOff(t))
	require.NoError(t, err)

	assert.Equal(t, "Diciembre", d.MonthName())
	assert.Equal(t, "enero", d.NextMonthRepr())
	assert.Equal(t, 2021, d.NextYear())
	assert.Equal(t, 31, d.DaysInMonth())
	assert.Equal(t, 8, d.DailyWorkingHoursCount())
}

func TestNew_InvalidRange(t *testing.T) {
	tests := []struct {
		name         string
		month        int
		workingHours []int
	}{
		{"month zero", 0, []int{9, 13, 14, 18}},
		{"month thirteen", 13, []int{9, 13, 14, 18}},
		{"three working hours", 7, []int{9, 14, 18}},
		{"five working hours", 7, []int{9, 13, 14, 18, 20}},
		{"hour 24", 7, []int{9, 13, 14, 24}},
		{"negative hour", 7, []int{-1, 13, 14, 18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(2020, tt.month, tt.workingHours, newTestWorker(t), newTestCompany(t), newTestDatesOff(t))
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestNew_MissingEntity(t *testing.T) {
	_, err := New(2020, 9, []int{9, 13, 14, 18}, nil, newTestCompany(t), newTestDatesOff(t))
	assert.ErrorIs(t, err, ErrMissingEntity)
}

func TestData_IsWorkingDay(t *testing.T) {
	d := newTestData(t)

	tests := []struct {
		name string
		day  int
		want bool
	}{
		{"Thursday", 3, true},
		{"Saturday", 5, false},
		{"Sunday", 6, false},
		{"holiday on a Friday", 11, false},
		{"holiday on a Thursday", 24, false},
		{"Friday", 25, true},
		{"last day", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.IsWorkingDay(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestData_IsWorkingDay_InvalidDay(t *testing.T) {
	d := newTestData(t)

	_, err := d.IsWorkingDay(31)
	assert.ErrorIs(t, err, dateutil.ErrInvalidDate)

	_, err = d.IsWorkingDay(0)
	assert.ErrorIs(t, err, dateutil.ErrInvalidDate)
}

func TestData_FormatLine(t *testing.T) {
	d := newTestData(t)

	tests := []struct {
		day  int
		want string
	}{
		{3, "3 & 09:00 & 13:00 & 14:00 & 18:00 & 8 & 0 & TG \\\\"},
		{5, "5 & & & & & & & \\\\"},
		{11, "11 & & & & & & & \\\\"},
		{25, "25 & 09:00 & 13:00 & 14:00 & 18:00 & 8 & 0 & TG \\\\"},
	}

	for _, tt := range tests {
		got, err := d.FormatLine(tt.day)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := d.FormatLine(32)
	assert.Error(t, err)
}

func TestData_TotalWorkingHours(t *testing.T) {
	d := newTestData(t)

	assert.Equal(t, 20, d.WorkingDays())
	assert.Equal(t, 160, d.TotalWorkingHours())
}

func TestData_Lines(t *testing.T) {
	d := newTestData(t)

	lines := d.Lines()
	require.Len(t, lines, 30)
	assert.Equal(t, "1 & 09:00 & 13:00 & 14:00 & 18:00 & 8 & 0 & TG \\\\", lines[0])
	assert.Equal(t, "5 & & & & & & & \\\\", lines[4])
	assert.Equal(t, []int{1, 2, 3}, d.Days()[:3])
}
