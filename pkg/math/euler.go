package math

import "github.com/chewxy/math32"

var (
	axisX = Vec3{1, 0, 0}
	axisY = Vec3{0, 1, 0}
	axisZ = Vec3{0, 0, 1}
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Euler is a rotation expressed as three angles in radians, applied
// around the X axis first, then Y, then Z.
type Euler struct {
	X, Y, Z float32
}

// EulerDegrees builds an Euler rotation from angles in degrees.
func EulerDegrees(x, y, z float32) Euler {
	return Euler{Radians(x), Radians(y), Radians(z)}
}

// Quat returns the combined rotation Rz * Ry * Rx as a quaternion.
func (e Euler) Quat() Quat {
	qx := QuatFromAxisAngle(axisX, e.X)
	qy := QuatFromAxisAngle(axisY, e.Y)
	qz := QuatFromAxisAngle(axisZ, e.Z)
	return qz.Mul(qy).Mul(qx)
}

// Mat4 returns the combined rotation Rz * Ry * Rx as a matrix.
func (e Euler) Mat4() Mat4 {
	return RotateZ(e.Z).Mul(RotateY(e.Y)).Mul(RotateX(e.X))
}

// RotateAround rotates p by q about pivot instead of the world origin.
func RotateAround(p, pivot Vec3, q Quat) Vec3 {
	return q.RotateVec3(p.Sub(pivot)).Add(pivot)
}
