package course

import "math"

// GradeRecord is the unit the CGPA aggregation consumes: a credit-hour
// weight and a grade-point score.
type GradeRecord struct {
	Credits     float64 `json:"credits"`
	GradePoints float64 `json:"grade_points"`
}

// CGPA computes the credit-weighted average grade-point value across
// records, rounded to 2 decimal places (ties away from zero).
//
// It never fails: a nil or empty input yields 0.0, records with a
// non-finite credit or grade-point value (or non-positive credits) are
// excluded from both the numerator and the denominator, and a zero total
// credit count yields 0.0 rather than a division by zero.
func CGPA(records []GradeRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}

	var totalPoints, totalCredits float64
	for _, r := range records {
		if !isFinite(r.Credits) || !isFinite(r.GradePoints) || r.Credits <= 0 {
			continue
		}
		totalPoints += r.GradePoints * r.Credits
		totalCredits += r.Credits
	}
	if totalCredits == 0 {
		return 0.0
	}
	return round2(totalPoints / totalCredits)
}

// round2 rounds to 2 decimals: scale by 100, round half away from zero,
// scale back.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
