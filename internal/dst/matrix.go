package dst

// fixedShift rescales each 1D pass so that sums stay inside int32:
// |sum| <= 90 * max|src|, and two passes over int16 input peak near 1.7e7.
const fixedShift = 4

// Matrix is the integer basis shared by the forward and inverse passes.
// Row k, column n is the weight of input sample n in coefficient k.
// The inverse pass reads it transposed.
var Matrix = [Size][Size]int32{
	{5, 10, 14, 16, 16, 14, 10, 5},
	{10, 16, 14, 5, -5, -14, -16, -10},
	{14, 14, 0, -14, -14, 0, 14, 14},
	{16, 5, -14, -10, 10, 14, -5, -16},
	{16, -5, -14, 10, 10, -14, -5, 16},
	{14, -14, 0, 14, -14, 0, 14, -14},
	{10, -16, 14, -5, -5, 14, -16, 10},
	{5, -10, 14, -16, 16, -14, 10, -5},
}
