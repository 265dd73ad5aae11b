package quickadd

// Entry is one parsed item line.
type Entry struct {
	Name           string
	Quantity       int
	Unit           string
	EstimatedPrice float64
}
