package telemetry

// TrendPoint is one point of the smoothed trend curve.
type TrendPoint struct {
	X float64
	Y float64
}

// Approximate smooths values with a three-point local quadratic.
//
// For each interior index i the curve through v[i-1], v[i], v[i+1] is
// reconstructed from its first and second differences and evaluated one step
// forward:
//
//	d1 = (v[i+1] - v[i-1]) / 2
//	d2 = v[i+1] - 2*v[i] + v[i-1]
//	y  = v[i] + d1 + d2/2
//
// X is i+1. Endpoints have no two neighbours and are never emitted, so fewer
// than three values yield nil.
func Approximate(values []float64) []TrendPoint {
	n := len(values)
	if n < 3 {
		return nil
	}

	points := make([]TrendPoint, 0, n-2)
	for i := 1; i < n-1; i++ {
		prev, cur, next := values[i-1], values[i], values[i+1]
		d1 := (next - prev) / 2.0
		d2 := next - 2.0*cur + prev
		points = append(points, TrendPoint{
			X: float64(i + 1),
			Y: cur + d1*1.0 + d2/2.0,
		})
	}
	return points
}

// TrendValues returns just the Y coordinates of points.
func TrendValues(points []TrendPoint) []float64 {
	if len(points) == 0 {
		return nil
	}
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}
