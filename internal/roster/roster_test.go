package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []Employee) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func Test_Load(t *testing.T) {
	r, err := Load("testdata/roster.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"EMP001", "EMP008", "EMP012"}, ids(r.All()))

	bjork, ok := r.ByID("EMP008")
	require.True(t, ok)
	assert.Equal(t, RoleInventoryClerk, bjork.Role)
	assert.Equal(t, "15:00", bjork.Start.String())
	assert.False(t, bjork.FullTime)
	assert.Equal(t, []time.Weekday{time.Wednesday, time.Thursday, time.Friday, time.Saturday}, bjork.WorkDays)

	_, ok = r.ByID("EMP999")
	assert.False(t, ok)
}

func Test_Load_ShippedRoster(t *testing.T) {
	r, err := Load("../../configs/roster.yaml")
	require.NoError(t, err)

	assert.Len(t, r.All(), 14)
	assert.Len(t, r.ByRole(RoleSecurity), 3)
	assert.Len(t, r.PartTime(), 4)
	assert.Len(t, r.FullTime(), 10)
	assert.Equal(t, "9097.75", r.TotalWeeklyPayroll().StringFixed(2))
}

func Test_Filters(t *testing.T) {
	// given
	r, err := Load("testdata/roster.yaml")
	require.NoError(t, err)
	monday, saturday, sunday := time.Monday, time.Saturday, time.Sunday

	testCases := []struct {
		name     string
		query    Query
		expected []string
	}{
		{name: "everyone", query: Query{}, expected: []string{"EMP001", "EMP008", "EMP012"}},
		{name: "by role", query: Query{Role: RoleSecurity}, expected: []string{"EMP012"}},
		{name: "by day", query: Query{Day: &monday}, expected: []string{"EMP001", "EMP012"}},
		{name: "nobody on sunday", query: Query{Day: &sunday}, expected: []string{}},
		{name: "full time", query: Query{Employment: FullTime}, expected: []string{"EMP001", "EMP012"}},
		{name: "combined", query: Query{Day: &saturday, Employment: PartTime}, expected: []string{"EMP008"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			found := r.Filter(tc.query)
			// then
			assert.Equal(t, tc.expected, ids(found))
		})
	}

	assert.Equal(t, ids(r.Filter(Query{Day: &monday})), ids(r.ByWorkDay(time.Monday)))
	assert.Equal(t, ids(r.Filter(Query{Employment: PartTime})), ids(r.PartTime()))
}

func Test_TotalWeeklyPayroll(t *testing.T) {
	r, err := Load("testdata/roster.yaml")
	require.NoError(t, err)

	// 45h x 25.00 + 34h x 16.00 + 42.5h x 17.50
	assert.Equal(t, "2412.75", r.TotalWeeklyPayroll().StringFixed(2))
}

func Test_Parse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "employees: ["},
		{name: "unknown role", data: `employees:
  - {id: E1, name: A, role: DJ, start: "08:00", end: "16:00", days: [Monday], rate: "10"}`},
		{name: "bad clock", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "8am", end: "16:00", days: [Monday], rate: "10"}`},
		{name: "zero length shift", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "08:00", days: [Monday], rate: "10"}`},
		{name: "unknown day", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "16:00", days: [Caturday], rate: "10"}`},
		{name: "repeated day", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "16:00", days: [Monday, Monday], rate: "10"}`},
		{name: "no days", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "16:00", days: [], rate: "10"}`},
		{name: "zero rate", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "16:00", days: [Monday], rate: "0"}`},
		{name: "duplicate id", data: `employees:
  - {id: E1, name: A, role: CASHIER, start: "08:00", end: "16:00", days: [Monday], rate: "10"}
  - {id: E1, name: B, role: CASHIER, start: "08:00", end: "16:00", days: [Monday], rate: "10"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Parse([]byte(tc.data))

			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func Test_Filter_ReturnsCopies(t *testing.T) {
	r, err := Load("testdata/roster.yaml")
	require.NoError(t, err)

	list := r.All()
	list[0].WorkDays[0] = time.Sunday

	first, _ := r.ByID("EMP001")
	assert.Equal(t, time.Monday, first.WorkDays[0])
}
