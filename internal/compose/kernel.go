// Gaussian kernel construction with a bounded LRU cache
package compose

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// identitySigma is the blur strength below which the blur is treated as
// the identity transform (intensity 0 rounds to sigma 0).
const identitySigma = 0.05

// kernelCacheSize bounds how many distinct kernels are retained. Kernels
// are pure functions of sigma, so eviction only costs recomputation.
const kernelCacheSize = 16

type kernelCache struct {
	cache *lru.Cache[int, []float32]
}

func newKernelCache() *kernelCache {
	c, err := lru.New[int, []float32](kernelCacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &kernelCache{cache: c}
}

// get returns a normalized 1-D Gaussian kernel for sigma, keyed by sigma
// quantized to 1/100 so regions with near-identical intensity share one
// kernel.
func (kc *kernelCache) get(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	if k, ok := kc.cache.Get(key); ok {
		return k
	}
	k := gaussianKernel(sigma)
	kc.cache.Add(key, k)
	return k
}

// kernelSize returns the odd kernel width for sigma: max(3, floor(3*sigma)),
// bumped to the next odd value when even.
func kernelSize(sigma float64) int {
	size := int(math.Floor(sigma * 3))
	if size < 3 {
		size = 3
	}
	if size%2 == 0 {
		size++
	}
	return size
}

// gaussianKernel builds a normalized 1-D Gaussian of the size dictated
// by sigma.
func gaussianKernel(sigma float64) []float32 {
	size := kernelSize(sigma)
	radius := size / 2
	kernel := make([]float32, size)

	sum := 0.0
	twoSigmaSq := 2 * sigma * sigma
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		w := math.Exp(-x * x / twoSigmaSq)
		kernel[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}
