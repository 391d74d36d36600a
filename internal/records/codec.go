// Package records holds the embedded academic record structures stored on a
// student row and the aggregate computations derived from them.
package records

import (
	"encoding/json"
)

// Period is one of the six fixed grading checkpoints of a term.
type Period string

const (
	PeriodMonth1  Period = "month1"
	PeriodMonth2  Period = "month2"
	PeriodMidterm Period = "midterm"
	PeriodMonth3  Period = "month3"
	PeriodMonth4  Period = "month4"
	PeriodFinal   Period = "final"

	// PeriodNone is the sentinel for a subject with no non-zero score yet.
	PeriodNone Period = "none"
)

// Periods lists the grading checkpoints in chronological order.
var Periods = []Period{PeriodMonth1, PeriodMonth2, PeriodMidterm, PeriodMonth3, PeriodMonth4, PeriodFinal}

// EmptyJSON is the canonical serialization of an empty record structure and
// the column default for both blobs.
const EmptyJSON = "{}"

// PeriodScores is the fixed-shape score record of a single subject.
type PeriodScores struct {
	Month1  int `json:"month1"`
	Month2  int `json:"month2"`
	Midterm int `json:"midterm"`
	Month3  int `json:"month3"`
	Month4  int `json:"month4"`
	Final   int `json:"final"`
}

// Score returns the value recorded for the given period.
func (p PeriodScores) Score(period Period) int {
	switch period {
	case PeriodMonth1:
		return p.Month1
	case PeriodMonth2:
		return p.Month2
	case PeriodMidterm:
		return p.Midterm
	case PeriodMonth3:
		return p.Month3
	case PeriodMonth4:
		return p.Month4
	case PeriodFinal:
		return p.Final
	}
	return 0
}

// SetScore records a value for the given period.
func (p *PeriodScores) SetScore(period Period, value int) {
	switch period {
	case PeriodMonth1:
		p.Month1 = value
	case PeriodMonth2:
		p.Month2 = value
	case PeriodMidterm:
		p.Midterm = value
	case PeriodMonth3:
		p.Month3 = value
	case PeriodMonth4:
		p.Month4 = value
	case PeriodFinal:
		p.Final = value
	}
}

// ScoreSheet maps subject name to its period scores.
type ScoreSheet map[string]PeriodScores

// AttendanceStatus is the recorded state of one subject on one date.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLeave   AttendanceStatus = "leave"
)

// AttendanceLog maps ISO calendar date to per-subject attendance.
type AttendanceLog map[string]map[string]AttendanceStatus

// DecodeScores parses a stored blob into a ScoreSheet. Decoding is total:
// malformed syntax, a wrong shape, or empty input all yield an empty sheet.
func DecodeScores(raw []byte) ScoreSheet {
	sheet := ScoreSheet{}
	if len(raw) == 0 {
		return sheet
	}
	if err := json.Unmarshal(raw, &sheet); err != nil {
		return ScoreSheet{}
	}
	if sheet == nil {
		return ScoreSheet{}
	}
	return sheet
}

// EncodeScores serializes a sheet. Nil and empty sheets both produce the
// canonical empty-map text used as the column default.
func EncodeScores(sheet ScoreSheet) []byte {
	if len(sheet) == 0 {
		return []byte(EmptyJSON)
	}
	out, err := json.Marshal(sheet)
	if err != nil {
		return []byte(EmptyJSON)
	}
	return out
}

// DecodeAttendance parses a stored blob into an AttendanceLog, with the same
// totality guarantee as DecodeScores.
func DecodeAttendance(raw []byte) AttendanceLog {
	log := AttendanceLog{}
	if len(raw) == 0 {
		return log
	}
	if err := json.Unmarshal(raw, &log); err != nil {
		return AttendanceLog{}
	}
	if log == nil {
		return AttendanceLog{}
	}
	return log
}

// EncodeAttendance serializes an attendance log; nil and empty logs produce
// the canonical empty-map text.
func EncodeAttendance(log AttendanceLog) []byte {
	if len(log) == 0 {
		return []byte(EmptyJSON)
	}
	out, err := json.Marshal(log)
	if err != nil {
		return []byte(EmptyJSON)
	}
	return out
}
