package kernel

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// defaultSeed matches the C library's implicit srand(1).
const defaultSeed = 1

// RNG is an injectable random source for tensor initialization.
// It is not safe for concurrent use.
type RNG struct {
	src rand.Source
}

// NewRNG creates an RNG seeded deterministically.
func NewRNG(seed uint64) *RNG {
	return &RNG{src: rand.NewPCG(seed, seed)}
}

var globalRNG = NewRNG(defaultSeed)

// Seed reseeds the process-wide RNG used by RandomUniform and RandomNormal.
func Seed(seed uint64) {
	globalRNG = NewRNG(seed)
}

// GlobalRNG returns the process-wide RNG.
func GlobalRNG() *RNG {
	return globalRNG
}

// RandomUniform fills k with samples from U(low, high) using the global RNG.
func (k *Tensor) RandomUniform(low, high float32) {
	k.RandomUniformWith(globalRNG, low, high)
}

// RandomUniformWith fills k with samples from U(low, high) drawn from r.
func (k *Tensor) RandomUniformWith(r *RNG, low, high float32) {
	dist := distuv.Uniform{Min: float64(low), Max: float64(high), Src: r.src}
	k.Each(func(idx Index) {
		k.Set(idx, float32(dist.Rand()))
	})
}

// RandomNormal fills k with samples from N(mean, std²) using the global RNG.
func (k *Tensor) RandomNormal(mean, std float32) {
	k.RandomNormalWith(globalRNG, mean, std)
}

// RandomNormalWith fills k with samples from N(mean, std²) drawn from r.
func (k *Tensor) RandomNormalWith(r *RNG, mean, std float32) {
	dist := distuv.Normal{Mu: float64(mean), Sigma: float64(std), Src: r.src}
	k.Each(func(idx Index) {
		k.Set(idx, float32(dist.Rand()))
	})
}
