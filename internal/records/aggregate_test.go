package records

import (
	"reflect"
	"testing"
)

func TestLatestNonzero(t *testing.T) {
	tests := []struct {
		name   string
		scores PeriodScores
		want   LatestGrade
	}{
		{
			name:   "all zero",
			scores: PeriodScores{},
			want:   LatestGrade{Value: 0, Period: PeriodNone},
		},
		{
			name:   "final wins over earlier",
			scores: PeriodScores{Month1: 40, Final: 90},
			want:   LatestGrade{Value: 90, Period: PeriodFinal},
		},
		{
			name:   "zero final falls back to month3",
			scores: PeriodScores{Month3: 70},
			want:   LatestGrade{Value: 70, Period: PeriodMonth3},
		},
		{
			name:   "midterm before month2",
			scores: PeriodScores{Month1: 10, Month2: 20, Midterm: 30},
			want:   LatestGrade{Value: 30, Period: PeriodMidterm},
		},
		{
			name:   "only month1",
			scores: PeriodScores{Month1: 55},
			want:   LatestGrade{Value: 55, Period: PeriodMonth1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatestNonzero(tt.scores); got != tt.want {
				t.Errorf("LatestNonzero() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		latest LatestGrade
		want   Result
	}{
		{name: "no score yet", latest: LatestGrade{Value: 0, Period: PeriodNone}, want: ResultPending},
		{name: "just below threshold", latest: LatestGrade{Value: 49, Period: PeriodFinal}, want: ResultFail},
		{name: "at threshold", latest: LatestGrade{Value: 50, Period: PeriodFinal}, want: ResultPass},
		{name: "full marks", latest: LatestGrade{Value: 100, Period: PeriodFinal}, want: ResultPass},
		{name: "low month score", latest: LatestGrade{Value: 1, Period: PeriodMonth1}, want: ResultFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.latest); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.latest, got, tt.want)
			}
		})
	}
}

func TestTotalsAndAverages(t *testing.T) {
	sheet := ScoreSheet{
		"A": {Final: 80},
		"B": {Final: 60},
	}
	subjects := []string{"A", "B"}

	got := TotalsAndAverages(sheet, subjects)

	if got.Totals[PeriodFinal] != 140 {
		t.Errorf("final total = %d, want 140", got.Totals[PeriodFinal])
	}
	if got.Averages[PeriodFinal] != 70.0 {
		t.Errorf("final average = %v, want 70.0", got.Averages[PeriodFinal])
	}
	// 140 / (2 subjects * 6 periods) = 11.666... -> 11.7
	if got.OverallAverage != 11.7 {
		t.Errorf("overall average = %v, want 11.7", got.OverallAverage)
	}
	for _, period := range []Period{PeriodMonth1, PeriodMonth2, PeriodMidterm, PeriodMonth3, PeriodMonth4} {
		if got.Totals[period] != 0 {
			t.Errorf("%s total = %d, want 0", period, got.Totals[period])
		}
	}
}

func TestTotalsAndAverages_MissingSubjectCountsAsZero(t *testing.T) {
	sheet := ScoreSheet{"A": {Midterm: 90}}
	got := TotalsAndAverages(sheet, []string{"A", "B", "C"})

	if got.Totals[PeriodMidterm] != 90 {
		t.Errorf("midterm total = %d, want 90", got.Totals[PeriodMidterm])
	}
	if got.Averages[PeriodMidterm] != 30.0 {
		t.Errorf("midterm average = %v, want 30.0", got.Averages[PeriodMidterm])
	}
}

func TestTotalsAndAverages_NoSubjects(t *testing.T) {
	got := TotalsAndAverages(ScoreSheet{"stale": {Final: 100}}, nil)
	if got.OverallAverage != 0 {
		t.Errorf("overall average = %v, want 0", got.OverallAverage)
	}
	for _, period := range Periods {
		if got.Totals[period] != 0 || got.Averages[period] != 0 {
			t.Errorf("%s = (%d, %v), want zeros", period, got.Totals[period], got.Averages[period])
		}
	}
}

func TestEnsureSubjectEntries(t *testing.T) {
	sheet := ScoreSheet{
		"kept":  {Final: 88},
		"stale": {Month1: 12},
	}
	got := EnsureSubjectEntries(sheet, []string{"kept", "added"})

	if _, ok := got["added"]; !ok {
		t.Error("missing zero-initialized entry for added subject")
	}
	if got["added"] != (PeriodScores{}) {
		t.Errorf("added entry = %+v, want zero record", got["added"])
	}
	if got["kept"].Final != 88 {
		t.Error("existing entry was overwritten")
	}
	if _, ok := got["stale"]; !ok {
		t.Error("stale subject was pruned; historical entries must be retained")
	}
}

func TestEnsureSubjectEntries_NilSheet(t *testing.T) {
	got := EnsureSubjectEntries(nil, []string{"A"})
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
}

func TestSortedDates(t *testing.T) {
	log := AttendanceLog{
		"2024-01-02": nil,
		"2024-03-01": nil,
		"2023-12-31": nil,
	}
	want := []string{"2024-03-01", "2024-01-02", "2023-12-31"}
	if got := SortedDates(log); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedDates() = %v, want %v", got, want)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{11.666666, 11.7},
		{11.64, 11.6},
		{70.0, 70.0},
		{0.05, 0.1},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
