package stats

// Summary condenses one column of values.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
	P25    float64
	P75    float64
}

// Describe computes the summary of a column.
func Describe(x []float64) Summary {
	min, max := MinMax(x)
	return Summary{
		Count:  len(x),
		Mean:   Mean(x),
		Std:    Std(x),
		Min:    min,
		Max:    max,
		Median: Median(x),
		P25:    Percentile(x, 25),
		P75:    Percentile(x, 75),
	}
}
