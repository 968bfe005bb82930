package reshape

// attainmentCap bounds the objective-attainment percentage for gauge
// display.
const attainmentCap = 200

// AttainmentPercent computes actual/target*100 capped at 200. A target of
// zero or less means no objective was set: the result is 200 when there is
// any revenue, 0 otherwise, never a division by zero.
func AttainmentPercent(actual, target float64) float64 {
	if target <= 0 {
		if actual > 0 {
			return attainmentCap
		}
		return 0
	}
	percent := actual / target * 100
	if percent > attainmentCap {
		return attainmentCap
	}
	return percent
}

// NeedlePosition maps a percentage onto the gauge display range [0,100].
func NeedlePosition(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
