package app

// Fixed Gaussian draws; pipeline outcomes over these are stable.
var whiteNoise = []float64{
	0.630, -0.361, -0.566, 0.646, -1.650, 0.651,
	0.414, -2.632, 1.716, -0.554, -0.150, -0.532,
	-1.115, -0.263, -0.339, 0.997, 0.715, 1.293,
	2.619, -0.066, 0.611, 2.385, 1.619, 0.570,
	1.125, 1.101, -1.547, -3.043, 0.258, 0.499,
	0.228, 1.591, 0.166, -0.098, 0.167, -1.334,
	0.193, -0.397, -1.126, 0.108, 0.168, 1.401,
	-0.613, -0.402, -0.545, 0.751, -0.761, -0.711,
	0.249, 0.016, -1.782, -1.046, 1.489, 0.385,
	1.284, 1.908, -0.351, -1.498, -0.766, -1.853,
	-1.033, 0.337, 1.578, 1.263, 1.549, -0.304,
	1.844, 0.255, -0.274, -0.658, 0.232, 1.556,
	-0.992, -0.609, 1.064, -1.472, 0.087, 0.577,
	1.265, -2.479,
}

// Cumulative sum of independent Gaussian shocks.
var randomWalk = []float64{
	1.143, 0.816, 0.753, 1.191, 2.241, 3.484,
	2.894, 4.106, 4.058, 3.870, 2.643, 2.165,
	0.972, -0.391, 1.198, 1.864, 2.128, 2.526,
	4.697, 4.139, 3.953, 4.170, 4.380, 5.322,
	5.522, 4.888, 5.269, 2.990, 1.759, 0.810,
	1.703, 3.161, 3.226, 1.644, 1.077, 1.626,
	2.900, 3.012, 1.364, 2.907, 3.614, 5.679,
	5.740, 4.816, 4.751, 4.648, 5.595, 5.074,
	5.523, 6.133, 7.339, 7.887, 8.035, 8.930,
	10.102, 10.614, 8.621, 7.302, 7.363, 6.392,
	5.975, 5.926, 4.982, 5.366, 4.471, 5.416,
	6.760, 6.856, 4.644, 4.615, 4.019, 5.609,
	4.538, 3.480, 3.097, 4.800, 4.293, 4.196,
	6.148, 7.448, 9.647, 10.394, 11.307, 10.814,
	10.751, 10.388, 10.287, 9.434, 9.044, 9.498,
	8.515, 8.214, 8.584, 7.713, 7.941, 7.507,
	8.325, 9.872, 7.993, 8.033, 9.015, 8.313,
	10.075, 10.334, 11.064, 9.964, 8.778, 10.700,
	11.321, 10.344, 10.131, 10.412, 11.137, 11.437,
	10.731, 12.028, 13.128, 14.046, 13.266, 12.255,
}

// AR(1) draw with coefficient 0.5.
var arOne = []float64{
	0.630, -0.046, -0.589, 0.352, -1.474, -0.086,
	0.372, -2.446, 0.493, -0.307, -0.304, -0.684,
	-1.457, -0.991, -0.835, 0.580, 1.005, 1.795,
	3.516, 1.693, 1.457, 3.114, 3.176, 2.158,
	2.204, 2.203, -0.445, -3.265, -1.374, -0.188,
	0.134, 1.658, 0.996, 0.400, 0.367, -1.151,
	-0.382, -0.588, -1.420, -0.602, -0.133, 1.335,
	0.054, -0.375, -0.733, 0.385, -0.568, -0.996,
	-0.249, -0.109, -1.837, -1.965, 0.506, 0.639,
	1.603, 2.710, 1.004, -0.996, -1.264, -2.485,
	-2.276, -0.801, 1.178, 1.852, 2.475, 0.934,
	2.311, 1.410, 0.431, -0.442, 0.011, 1.561,
	-0.212, -0.715, 0.706, -1.119, -0.473, 0.341,
	1.435, -1.762, -1.818, -0.426, -0.541, -1.795,
	0.136, 1.922, 3.120, 4.085, 2.392, 1.943,
	1.562, 0.629, -0.236, -0.172, 0.636, 0.665,
	-0.189, -0.375, 0.131, -0.010, -1.090, -0.422,
	-0.083, -0.270, -1.095, 0.802, -2.359, -0.634,
	-1.386, 0.288, -0.575, -0.855, -0.594, 1.955,
	-0.361, 0.646, 0.492, -0.579, -0.768, -0.845,
	0.640, -0.992, -1.380, -0.049, -0.249, -1.389,
	-2.209, -0.603, 1.084, 0.484, 1.860, -0.193,
	-0.660, 0.380, 0.198, -0.185, -0.786, -0.074,
	-0.357, -0.285, -0.651, -0.013, 0.137, -0.199,
	1.052, 0.644, 0.894, -0.014, -0.366, -0.771,
}
