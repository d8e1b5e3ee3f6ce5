package vecmath

// Vec3 represents a 3D vector in a right-handed coordinate system with Y up.
type Vec3 struct {
	X, Y, Z float32
}

// NewVec3 creates a new 3D vector with the given components.
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the difference between two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies the vector by a scalar.
func (v Vec3) Scale(k float32) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

// Negate returns the vector pointing in the opposite direction.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared magnitude of the vector.
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector.
func (v Vec3) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction. Vectors shorter
// than 1e-6 normalize to the zero vector instead of producing NaN.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length < 1e-6 {
		return Vec3{}
	}
	inv := 1 / length
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Distance returns the distance between two points.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Lerp linearly interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		X: Lerp(v.X, o.X, t),
		Y: Lerp(v.Y, o.Y, t),
		Z: Lerp(v.Z, o.Z, t),
	}
}

// ApproxEqual reports whether two vectors are equal within a relative
// tolerance on every component.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return ApproxEqual(v.X, o.X) && ApproxEqual(v.Y, o.Y) && ApproxEqual(v.Z, o.Z)
}

// IsZero reports whether the vector is shorter than 1e-6.
func (v Vec3) IsZero() bool {
	return v.LengthSquared() < 1e-12
}
