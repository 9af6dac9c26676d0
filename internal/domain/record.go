package domain

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// FARS encodes a missing coordinate as an out-of-range sentinel rather
// than an empty field. Anything beyond these bounds is "not reported".
const (
	maxLongitude = 900
	maxLatitude  = 90
)

// AccidentRecord is one row of a yearly accident census file. Only the
// columns this pipeline consumes get typed fields; every other column
// lands in Extra keyed by its header name.
type AccidentRecord struct {
	State     int
	Month     int
	Longitude float64
	Latitude  float64
	Extra     map[string]string
}

// HasCoordinates reports whether both coordinates carry real positions
// rather than FARS missing-value sentinels.
func (r AccidentRecord) HasCoordinates() bool {
	return r.Longitude <= maxLongitude && r.Latitude <= maxLatitude
}

// YearRecordSet holds the parsed rows of a single year's census file.
type YearRecordSet struct {
	SourceFile string
	Records    []AccidentRecord
}

// HasState reports whether any record carries the given state code.
func (s *YearRecordSet) HasState(stateNum int) bool {
	for _, rec := range s.Records {
		if rec.State == stateNum {
			return true
		}
	}
	return false
}

// FilterState returns the records belonging to one state.
func (s *YearRecordSet) FilterState(stateNum int) []AccidentRecord {
	var out []AccidentRecord
	for _, rec := range s.Records {
		if rec.State == stateNum {
			out = append(out, rec)
		}
	}
	return out
}

// YearMonthTable is the two-column projection the summarizer works on:
// the month of every accident in one year, with the year injected by the
// loader rather than read from the file.
type YearMonthTable struct {
	Year   int
	Months []int
}

// SummaryMatrix is the month-by-year pivot of accident counts. It always
// has twelve month rows (ascending) and one column per distinct year
// (ascending); a month a year recorded no accidents in holds zero. The
// fixed shape keeps matrices comparable across year sets, unlike the
// source aggregation which only emitted months that actually occurred.
type SummaryMatrix struct {
	Years       []int
	Cells       [12][]int // Cells[m-1][i] = accidents in month m of Years[i]
	GeneratedAt time.Time
}

// Count returns the number of accidents for a month (1-12) in a year,
// or zero when the year is not a column of the matrix.
func (m *SummaryMatrix) Count(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	for i, y := range m.Years {
		if y == year {
			return m.Cells[month-1][i]
		}
	}
	return 0
}

// String renders the matrix as an aligned text table, months as rows and
// years as columns.
func (m *SummaryMatrix) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "Month")
	for _, year := range m.Years {
		fmt.Fprintf(w, "\t%d", year)
	}
	fmt.Fprintln(w)

	for month := 1; month <= 12; month++ {
		fmt.Fprint(w, time.Month(month).String()[:3])
		for i := range m.Years {
			fmt.Fprintf(w, "\t%d", m.Cells[month-1][i])
		}
		fmt.Fprintln(w)
	}

	w.Flush()
	return sb.String()
}
