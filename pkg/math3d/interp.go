package math3d

// Lerp returns the linear interpolation (1-t)*a + t*b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Blerp returns the barycentric combination bary.X*a + bary.Y*b + bary.Z*c.
// bary is expected to sum to 1 for points inside the triangle.
func Blerp(bary Vec3, a, b, c float64) float64 {
	return bary.X*a + bary.Y*b + bary.Z*c
}

// Blerp2 barycentrically combines three Vec2 values.
func Blerp2(bary Vec3, a, b, c Vec2) Vec2 {
	return Vec2{
		Blerp(bary, a.X, b.X, c.X),
		Blerp(bary, a.Y, b.Y, c.Y),
	}
}

// Blerp3 barycentrically combines three Vec3 values.
func Blerp3(bary Vec3, a, b, c Vec3) Vec3 {
	return Vec3{
		Blerp(bary, a.X, b.X, c.X),
		Blerp(bary, a.Y, b.Y, c.Y),
		Blerp(bary, a.Z, b.Z, c.Z),
	}
}

// Blerp4 barycentrically combines three Vec4 values.
func Blerp4(bary Vec3, a, b, c Vec4) Vec4 {
	return Vec4{
		Blerp(bary, a.X, b.X, c.X),
		Blerp(bary, a.Y, b.Y, c.Y),
		Blerp(bary, a.Z, b.Z, c.Z),
		Blerp(bary, a.W, b.W, c.W),
	}
}
