package dst

import "fmt"

// Forward1D applies the basis to an 8-element vector:
// dst[k] = (sum over n of Matrix[k][n]*src[n]) >> 4
func Forward1D(src [Size]int32) [Size]int32 {
	var dst [Size]int32
	for k := 0; k < Size; k++ {
		var s int32
		for n := 0; n < Size; n++ {
			s += Matrix[k][n] * src[n]
		}
		if invariantChecks {
			checkAccumulator(s, func(n int) int64 { return int64(Matrix[k][n]) * int64(src[n]) })
		}
		dst[k] = s >> fixedShift
	}
	return dst
}

// Inverse1D applies the transposed basis to an 8-element vector:
// dst[n] = (sum over k of Matrix[k][n]*src[k]) >> 4
func Inverse1D(src [Size]int32) [Size]int32 {
	var dst [Size]int32
	for n := 0; n < Size; n++ {
		var s int32
		for k := 0; k < Size; k++ {
			s += Matrix[k][n] * src[k]
		}
		if invariantChecks {
			checkAccumulator(s, func(k int) int64 { return int64(Matrix[k][n]) * int64(src[k]) })
		}
		dst[n] = s >> fixedShift
	}
	return dst
}

// Forward performs the separable 2D transform on an 8x8 block.
// Each row is transformed, the result transposed, each row (the original
// columns) transformed again and the result transposed back. Outputs are
// saturated to int16.
// When ext is not nil every 1D output of both passes is folded into it.
func Forward(src *Samples, dst *Coeffs, ext *Extremes) {
	var rowOut [Size][Size]int32
	for r := 0; r < Size; r++ {
		var in [Size]int32
		for c := 0; c < Size; c++ {
			in[c] = int32(src[r][c])
		}
		rowOut[r] = Forward1D(in)
		ext.observeVector(&rowOut[r])
	}

	colIn := transpose(&rowOut)

	var colOut [Size][Size]int32
	for c := 0; c < Size; c++ {
		colOut[c] = Forward1D(colIn[c])
		ext.observeVector(&colOut[c])
	}

	out := transpose(&colOut)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			dst[r][c] = Clamp16(out[r][c])
		}
	}
}

// Inverse undoes Forward using the same row/transpose layout.
// The round trip carries the basis gain (about 20x at every position);
// reconstruction divides it out with a scale table.
func Inverse(src *Coeffs, dst *Samples) {
	var colOut [Size][Size]int32
	for c := 0; c < Size; c++ {
		var in [Size]int32
		for r := 0; r < Size; r++ {
			in[r] = int32(src[c][r])
		}
		colOut[c] = Inverse1D(in)
	}

	rowIn := transpose(&colOut)

	var recon [Size][Size]int32
	for r := 0; r < Size; r++ {
		recon[r] = Inverse1D(rowIn[r])
	}

	out := transpose(&recon)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			dst[r][c] = Clamp16(out[r][c])
		}
	}
}

func transpose(m *[Size][Size]int32) [Size][Size]int32 {
	var t [Size][Size]int32
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			t[c][r] = m[r][c]
		}
	}
	return t
}

// checkAccumulator recomputes a 1D sum in int64 and panics when the
// int32 accumulator disagrees. Only reached in blockxform_debug builds.
func checkAccumulator(got int32, term func(i int) int64) {
	var wide int64
	for i := 0; i < Size; i++ {
		wide += term(i)
	}
	if int64(got) != wide {
		panic(fmt.Sprintf("dst: accumulator overflow: int32 sum %d, exact %d", got, wide))
	}
}
