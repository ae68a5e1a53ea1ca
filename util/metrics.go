package util

// MetricsBucketsMilliSeconds covers latencies from 1ms to 4s.
var MetricsBucketsMilliSeconds = []float64{
	1e-3, 2e-3, 4e-3, 16e-3, 32e-3, 64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3,
}

// MetricsBucketsCount covers small cardinalities, such as the number of states claimed by one
// selection.
var MetricsBucketsCount = []float64{
	1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024,
}
