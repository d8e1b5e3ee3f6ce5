package vecmath

import (
	"math"
)

// Dual is a dual number a+bε with ε²=0, used for forward-mode automatic
// differentiation. Evaluating a function built from Dual operations at
// Var(x) carries the derivative along in the Eps component, which lets
// solver users derive analytical Jacobians instead of finite-differencing.
type Dual struct {
	Val, Eps float32
}

// Const returns the dual number representing a constant (derivative zero).
func Const(v float32) Dual {
	return Dual{Val: v}
}

// Var returns the dual number seeded as the differentiation variable.
func Var(v float32) Dual {
	return Dual{Val: v, Eps: 1}
}

// Add returns d+o.
func (d Dual) Add(o Dual) Dual {
	return Dual{Val: d.Val + o.Val, Eps: d.Eps + o.Eps}
}

// Sub returns d-o.
func (d Dual) Sub(o Dual) Dual {
	return Dual{Val: d.Val - o.Val, Eps: d.Eps - o.Eps}
}

// Mul returns d*o with the product rule applied to the ε part.
func (d Dual) Mul(o Dual) Dual {
	return Dual{Val: d.Val * o.Val, Eps: d.Val*o.Eps + d.Eps*o.Val}
}

// Div returns d/o with the quotient rule applied to the ε part. Division by
// a near-zero value returns zero rather than NaN.
func (d Dual) Div(o Dual) Dual {
	if Abs(o.Val) < 1e-12 {
		return Dual{}
	}
	return Dual{
		Val: d.Val / o.Val,
		Eps: (d.Eps*o.Val - d.Val*o.Eps) / (o.Val * o.Val),
	}
}

// Neg returns -d.
func (d Dual) Neg() Dual {
	return Dual{Val: -d.Val, Eps: -d.Eps}
}

// Sqrt returns the square root with derivative 1/(2*sqrt(v)).
func (d Dual) Sqrt() Dual {
	root := Sqrt(d.Val)
	if root < 1e-12 {
		return Dual{}
	}
	return Dual{Val: root, Eps: d.Eps / (2 * root)}
}

// Sin returns the sine with derivative cos(v).
func (d Dual) Sin() Dual {
	return Dual{Val: Sin(d.Val), Eps: d.Eps * Cos(d.Val)}
}

// Cos returns the cosine with derivative -sin(v).
func (d Dual) Cos() Dual {
	return Dual{Val: Cos(d.Val), Eps: -d.Eps * Sin(d.Val)}
}

// Pow raises d to a constant power n.
func (d Dual) Pow(n float32) Dual {
	val := float32(math.Pow(float64(d.Val), float64(n)))
	deriv := n * float32(math.Pow(float64(d.Val), float64(n-1)))
	return Dual{Val: val, Eps: d.Eps * deriv}
}

// Derive evaluates f at x and returns both the value and the first
// derivative.
func Derive(f func(Dual) Dual, x float32) (value, derivative float32) {
	out := f(Var(x))
	return out.Val, out.Eps
}
