package records

import (
	"math"
	"sort"
)

// PassThreshold is the minimum passing score.
const PassThreshold = 50

// latestPrecedence orders periods from most to least recent; the first
// non-zero score found in this order is the grade that currently represents
// the subject.
var latestPrecedence = []Period{PeriodFinal, PeriodMonth4, PeriodMonth3, PeriodMidterm, PeriodMonth2, PeriodMonth1}

type Result string

const (
	ResultPending Result = "pending"
	ResultPass    Result = "pass"
	ResultFail    Result = "fail"
)

// LatestGrade is the most recent non-zero score of a subject, or the
// {0, "none"} sentinel when every period is still zero.
type LatestGrade struct {
	Value  int    `json:"value"`
	Period Period `json:"period"`
}

// EnsureSubjectEntries inserts a zero-initialized record for every listed
// subject missing from the sheet. Subjects no longer in the list are kept;
// stale entries are deliberately retained as historical record.
func EnsureSubjectEntries(sheet ScoreSheet, subjects []string) ScoreSheet {
	if sheet == nil {
		sheet = ScoreSheet{}
	}
	for _, subject := range subjects {
		if _, ok := sheet[subject]; !ok {
			sheet[subject] = PeriodScores{}
		}
	}
	return sheet
}

// LatestNonzero scans periods from final back to month1 and returns the first
// non-zero score.
func LatestNonzero(scores PeriodScores) LatestGrade {
	for _, period := range latestPrecedence {
		if v := scores.Score(period); v > 0 {
			return LatestGrade{Value: v, Period: period}
		}
	}
	return LatestGrade{Value: 0, Period: PeriodNone}
}

// Classify derives the subject result from its latest grade: pending while no
// score is recorded, then pass/fail against the threshold.
func Classify(latest LatestGrade) Result {
	if latest.Value == 0 {
		return ResultPending
	}
	if latest.Value >= PassThreshold {
		return ResultPass
	}
	return ResultFail
}

// Totals carries the per-period aggregates over a subject list and the
// completion-weighted overall average.
type Totals struct {
	Totals   map[Period]int     `json:"totals"`
	Averages map[Period]float64 `json:"averages"`

	// OverallAverage divides by the count of graded slots (subjects x 6),
	// not by the count of non-zero entries, so ungraded periods pull it down.
	OverallAverage float64 `json:"overall_average"`
}

// TotalsAndAverages computes per-period totals and averages across the given
// subject list. Subjects absent from the sheet count as zero. Averages are
// reported to one decimal place; with an empty subject list all averages are
// zero.
func TotalsAndAverages(sheet ScoreSheet, subjects []string) Totals {
	t := Totals{
		Totals:   make(map[Period]int, len(Periods)),
		Averages: make(map[Period]float64, len(Periods)),
	}
	for _, period := range Periods {
		t.Totals[period] = 0
		t.Averages[period] = 0
	}

	for _, subject := range subjects {
		scores := sheet[subject]
		for _, period := range Periods {
			t.Totals[period] += scores.Score(period)
		}
	}

	if len(subjects) == 0 {
		return t
	}

	sum := 0
	for _, period := range Periods {
		total := t.Totals[period]
		t.Averages[period] = round1(float64(total) / float64(len(subjects)))
		sum += total
	}
	t.OverallAverage = round1(float64(sum) / float64(len(subjects)*len(Periods)))
	return t
}

// SortedDates returns the attendance dates in descending order, the order the
// attendance view displays them.
func SortedDates(log AttendanceLog) []string {
	dates := make([]string, 0, len(log))
	for date := range log {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// round1 rounds half away from zero to one decimal place, matching the
// toFixed(1) presentation the aggregates were defined with.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
