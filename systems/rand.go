package systems

// Rand is the subset of *math/rand.Rand the systems draw from.
// Passing it explicitly keeps runs reproducible from a single seed.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
