package analytics

import "math"

// Percentage is round(100 * completed / total), or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(completed) / float64(total) * 100)
}

// roundHalfUp rounds .5 toward +Inf, matching how the figures have always been shown.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
