package entity

// Frequency is the coarse popularity rank bucket of a term.
type Frequency string

const (
	FrequencyTop500    Frequency = "Top 500"
	FrequencyTop1000   Frequency = "Top 1000"
	FrequencyTop3000   Frequency = "Top 3000"
	FrequencyTop5000   Frequency = "Top 5000"
	FrequencyTop10000P Frequency = "10000+"
)

// Frequencies lists the buckets in rank order.
var Frequencies = []Frequency{
	FrequencyTop500,
	FrequencyTop1000,
	FrequencyTop3000,
	FrequencyTop5000,
	FrequencyTop10000P,
}

// NormalizeFrequency maps raw generation output and legacy coarse labels
// onto the fixed bucket set. Already-valid buckets pass through; High,
// Medium and Low are legacy labels; anything else falls to 10000+.
func NormalizeFrequency(raw string) Frequency {
	switch Frequency(raw) {
	case FrequencyTop500, FrequencyTop1000, FrequencyTop3000, FrequencyTop5000, FrequencyTop10000P:
		return Frequency(raw)
	}
	switch raw {
	case "High":
		return FrequencyTop1000
	case "Medium":
		return FrequencyTop3000
	case "Low":
		return FrequencyTop10000P
	}
	return FrequencyTop10000P
}
