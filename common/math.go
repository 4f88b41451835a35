package common

import (
	"math"
)

// Transform3D is a 4x4 homogeneous transform stored in column-major order.
// Elements are addressed with 1-based (row, col) indices so that At(3, 4)
// is the perspective component usually written as m34.
type Transform3D [16]float32

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order.
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Identity3D returns the identity transform.
//
// Returns:
//   - Transform3D: the identity matrix
func Identity3D() Transform3D {
	var t Transform3D
	Identity(t[:])
	return t
}

// At returns the element at the given 1-based row and column.
//
// Parameters:
//   - row: row index in [1, 4]
//   - col: column index in [1, 4]
//
// Returns:
//   - float32: the matrix element
func (t Transform3D) At(row, col int) float32 {
	return t[index4(row, col)]
}

// Set overwrites the element at the given 1-based row and column.
//
// Parameters:
//   - row: row index in [1, 4]
//   - col: column index in [1, 4]
//   - v: the new element value
func (t *Transform3D) Set(row, col int, v float32) {
	t[index4(row, col)] = v
}

// Concat returns t * o. Applied to row vectors this performs t first and o second,
// which is how a layer's own transform composes with its parent's sublayer transform.
//
// Parameters:
//   - o: the right-hand transform
//
// Returns:
//   - Transform3D: the product
func (t Transform3D) Concat(o Transform3D) Transform3D {
	var out Transform3D
	Mul4(out[:], t[:], o[:])
	return out
}

// IsIdentity reports whether every element matches the identity matrix exactly.
//
// Returns:
//   - bool: true for the identity transform
func (t Transform3D) IsIdentity() bool {
	return t == Identity3D()
}

// DegreesToRadians converts an angle in degrees to radians as deg * pi / 180.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float64: the angle in radians
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func index4(row, col int) int {
	if row < 1 || row > 4 || col < 1 || col > 4 {
		panic("common: transform index out of range")
	}
	return (col-1)*4 + (row - 1)
}
