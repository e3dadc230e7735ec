package common

// Lerp moves a toward b by the fraction t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
