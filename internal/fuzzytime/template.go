package fuzzytime

// Template is one candidate format tried against a simplified date or time
// string. Spec is the strftime spelling (what users and logs see) and Layout
// is the equivalent Go reference layout used for strict parsing.
//
// Layouts deliberately use the non-padded Go tokens ("1", "2", "3", "4", "5")
// so that "5 11 24" and "05 11 2024" are both accepted, like strptime does.
type Template struct {
	Spec   string
	Layout string
}

// String returns the strftime spelling.
func (t Template) String() string {
	return t.Spec
}

// Date templates. Short years follow Go's fixed pivot: 69..99 map to
// 1969..1999 and 00..68 map to 2000..2068.
var (
	DayMonthLongYear  = Template{Spec: "%d %m %Y", Layout: "2 1 2006"}
	DayMonthShortYear = Template{Spec: "%d %m %y", Layout: "2 1 06"}
	MonthDayLongYear  = Template{Spec: "%m %d %Y", Layout: "1 2 2006"}
	MonthDayShortYear = Template{Spec: "%m %d %y", Layout: "1 2 06"}
	YearMonthDay      = Template{Spec: "%Y %m %d", Layout: "2006 1 2"}
)

// Time templates. Input is upper-cased before matching, so "pm" and "PM"
// both satisfy the meridiem token.
var (
	Clock24           = Template{Spec: "%H %M %S", Layout: "15 4 5"}
	Clock12Meridiem   = Template{Spec: "%I %M %S %p", Layout: "3 4 5 PM"}
	Clock12MeridiemAt = Template{Spec: "%p %I %M %S", Layout: "PM 3 4 5"}
)

// DateSeed returns the initial date candidate order for a locale that puts
// the day before the month (dayFirst) or not.
func DateSeed(dayFirst bool) []Template {
	if dayFirst {
		return []Template{
			DayMonthLongYear,
			DayMonthShortYear,
			MonthDayLongYear,
			MonthDayShortYear,
			YearMonthDay,
		}
	}
	return []Template{
		MonthDayLongYear,
		MonthDayShortYear,
		YearMonthDay,
		DayMonthLongYear,
		DayMonthShortYear,
	}
}

// TimeSeed returns the fixed initial time candidate order.
func TimeSeed() []Template {
	return []Template{Clock24, Clock12Meridiem, Clock12MeridiemAt}
}
