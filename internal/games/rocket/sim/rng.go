package sim

// Source is the random stream shared by the spawner and the effects.
// Implementations must be deterministic for a given construction.
type Source interface {
	Uint32() uint32
	Float64() float64 // In [0, 1)
}

// Default PCG32 parameters for engines built without WithSeed.
const (
	DefaultSeed   uint64 = 42
	DefaultStream uint64 = 42
)

// PCG32 is the XSH-RR permuted congruential generator with 64-bit state.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 seeds a generator. Different streams give independent sequences
// for the same seed.
func NewPCG32(seed, stream uint64) *PCG32 {
	p := &PCG32{inc: stream<<1 | 1}
	p.Uint32()
	p.state += seed
	p.Uint32()
	return p
}

// Uint32 returns the next 32 random bits.
func (p *PCG32) Uint32() uint32 {
	old := p.state
	p.state = old*6364136223846793005 + p.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27) //#nosec G115 -- intentional truncation
	rot := uint32(old >> 59)                        //#nosec G115 -- top 5 bits
	return xorshifted>>rot | xorshifted<<((-rot)&31)
}

// Float64 returns a uniform value in [0, 1) built from 53 random bits.
func (p *PCG32) Float64() float64 {
	hi := uint64(p.Uint32()) >> 5
	lo := uint64(p.Uint32()) >> 6
	return float64(hi<<26|lo) / (1 << 53)
}

// State exposes the internal state for snapshot hashing.
func (p *PCG32) State() uint64 {
	return p.state
}

// between returns a uniform value in [lo, hi).
func between(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}
