package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	stops, ok := Lookup(TableStops)
	require.True(t, ok)
	assert.True(t, stops.Required)
	assert.Equal(t, "stops.txt", stops.FileName())

	field, ok := stops.Field("stop_lat")
	require.True(t, ok)
	assert.Equal(t, FieldTypeFloat, field.Type)
	assert.True(t, field.Required)

	_, ok = stops.Field("platform_code")
	assert.False(t, ok)

	_, ok = Lookup("pathways")
	assert.False(t, ok)
}

func TestRequiredTables(t *testing.T) {
	var requiredTables []string
	for _, format := range Formats() {
		if format.Required {
			requiredTables = append(requiredTables, format.ID)
		}
	}

	assert.Equal(t, []string{"agency", "stops", "routes", "trips", "stop_times", "calendar"}, requiredTables)
}

func TestRequiredFieldIDs(t *testing.T) {
	calendarDates, _ := Lookup(TableCalendarDates)
	assert.Equal(t, []string{"service_id", "date", "exception_type"}, calendarDates.RequiredFieldIDs())
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		fieldType FieldType
		raw       string
		expected  any
	}{
		{FieldTypeString, " Main St ", " Main St "},
		{FieldTypeString, "", ""},
		{FieldTypeInt, "3", 3},
		{FieldTypeInt, " 42 ", 42},
		{FieldTypeInt, "", nil},
		{FieldTypeFloat, "52.5163", 52.5163},
		{FieldTypeFloat, "-0.5", -0.5},
		{FieldTypeFloat, "", nil},
		{FieldTypeDate, "20000101", 0},
		{FieldTypeDate, "20000102", 1},
		{FieldTypeDate, "19991231", -1},
		{FieldTypeDate, "20170512", 6341},
		{FieldTypeDate, "25000101", 182622},
		{FieldTypeDate, "99991230", 2921938},
		{FieldTypeDate, "99991231", 2921939},
		{FieldTypeDate, "16000101", -146097},
		{FieldTypeTime, "00:00:00", 0},
		{FieldTypeTime, "8:05:09", 8*3600 + 5*60 + 9},
		{FieldTypeTime, "25:10:00", 25*3600 + 10*60},
		{FieldTypeTime, "", nil},
	}

	for _, test := range tests {
		value, err := test.fieldType.Coerce(test.raw)
		require.NoError(t, err, "%s %q", test.fieldType, test.raw)
		assert.Equal(t, test.expected, value, "%s %q", test.fieldType, test.raw)
	}
}

func TestCoerceInvalid(t *testing.T) {
	tests := []struct {
		fieldType FieldType
		raw       string
	}{
		{FieldTypeInt, "abc"},
		{FieldTypeInt, "1.5"},
		{FieldTypeFloat, "north"},
		{FieldTypeFloat, "NaN"},
		{FieldTypeFloat, "Inf"},
		{FieldTypeFloat, "-Infinity"},
		{FieldTypeFloat, "1e999"},
		{FieldTypeDate, "2017-05-12"},
		{FieldTypeDate, "20171345"},
		{FieldTypeTime, "08:00"},
		{FieldTypeTime, "08:61:00"},
		{FieldTypeTime, "aa:00:00"},
		{FieldType("bool"), "1"},
	}

	for _, test := range tests {
		_, err := test.fieldType.Coerce(test.raw)
		assert.Error(t, err, "%s %q", test.fieldType, test.raw)
	}
}

func TestDayNumber(t *testing.T) {
	start := time.Date(2017, time.May, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2017, time.May, 21, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 9, DayNumber(end)-DayNumber(start))
	assert.Equal(t, start, DayDate(DayNumber(start)))

	local := time.Date(2017, time.May, 12, 1, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, DayNumber(start), DayNumber(local))
}
