/*Package eqtol compares floating-point vectors to within a tolerance: a
relative tolerance for force agreement between configurations and an
absolute tolerance for exact bookkeeping. No other package imports it yet.*/
package eqtol

import "math"

// Float64sAbs returns true if x and y have the same length and every element
// differs by no more than eps.
func Float64sAbs(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if math.Abs(x[i]-y[i]) > eps {
			return false
		}
	}
	return true
}

// Float64sRel returns true if x and y have the same length and every element
// agrees to within rel relative error. Elements near zero in both x and y
// fall back to an absolute comparison against rel so that 0 == 0 is not a
// division by zero.
func Float64sRel(x, y []float64, rel float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !scalarRel(x[i], y[i], rel) {
			return false
		}
	}
	return true
}

func scalarRel(a, b, rel float64) bool {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < rel {
		return diff <= rel
	}
	return diff/scale <= rel
}

// Vec3sRel returns true if every component of every 3-vector in x and y
// agrees to within rel relative error.
func Vec3sRel(x, y [][3]float64, rel float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		for dim := 0; dim < 3; dim++ {
			if !scalarRel(x[i][dim], y[i][dim], rel) {
				return false
			}
		}
	}
	return true
}
