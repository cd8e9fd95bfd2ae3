package state

import "github.com/milosgajdos/go-measure/scalar"

// Rotation returns the body to navigation frame rotation matrix of the attitude quaternion in x.
// The quaternion is assumed to have unit length.
func Rotation[T any](o scalar.Ops[T], x *Vector[T]) [3][3]T {
	qw, qx, qy, qz := x[QuatW], x[QuatX], x[QuatY], x[QuatZ]
	one, two := o.Const(1.0), o.Const(2.0)

	xx, yy, zz := o.Mul(qx, qx), o.Mul(qy, qy), o.Mul(qz, qz)
	xy, xz, yz := o.Mul(qx, qy), o.Mul(qx, qz), o.Mul(qy, qz)
	wx, wy, wz := o.Mul(qw, qx), o.Mul(qw, qy), o.Mul(qw, qz)

	var r [3][3]T
	r[0][0] = o.Sub(one, o.Mul(two, o.Add(yy, zz)))
	r[0][1] = o.Mul(two, o.Sub(xy, wz))
	r[0][2] = o.Mul(two, o.Add(xz, wy))
	r[1][0] = o.Mul(two, o.Add(xy, wz))
	r[1][1] = o.Sub(one, o.Mul(two, o.Add(xx, zz)))
	r[1][2] = o.Mul(two, o.Sub(yz, wx))
	r[2][0] = o.Mul(two, o.Sub(xz, wy))
	r[2][1] = o.Mul(two, o.Add(yz, wx))
	r[2][2] = o.Sub(one, o.Mul(two, o.Add(xx, yy)))

	return r
}

// ToBody rotates navigation frame vector v into the body frame: R^T v.
func ToBody[T any](o scalar.Ops[T], r *[3][3]T, v [3]T) [3]T {
	var b [3]T
	for i := 0; i < 3; i++ {
		b[i] = o.Add(o.Add(o.Mul(r[0][i], v[0]), o.Mul(r[1][i], v[1])), o.Mul(r[2][i], v[2]))
	}
	return b
}
