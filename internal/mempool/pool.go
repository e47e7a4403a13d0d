// Package mempool provides sized pools for scratch buffers used on hot
// paths: visited masks for flood fill and contour tracing, pixel buffers
// for the raster transforms, and float staging for tensor conversion.
package mempool

import "sync"

var (
	float32Pools sync.Map // key: size class (int), value: *sync.Pool
	boolPools    sync.Map
	uint8Pools   sync.Map
)

// sizeClass rounds n up to the next multiple of 1024 to reduce churn.
func sizeClass(n int) int {
	const step = 1024
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// get retrieves a zeroed buffer of length n from the pool keyed by size class.
func get[T comparable](pools *sync.Map, n int) []T {
	cls := sizeClass(n)
	pAny, _ := pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]T, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]T, n)
	}
	buf, ok := p.Get().([]T)
	if !ok || cap(buf) < cls {
		buf = make([]T, cls)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

// put returns a buffer to its size-class pool. Nil slices are ignored.
func put[T comparable](pools *sync.Map, buf []T) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	pAny, _ := pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]T, cls) }})
	if p, ok := pAny.(*sync.Pool); ok {
		p.Put(buf[:cap(buf)]) //nolint:staticcheck
	}
}

// GetFloat32 retrieves a zeroed []float32 buffer of length n.
// The caller must return it via PutFloat32 when done.
func GetFloat32(n int) []float32 { return get[float32](&float32Pools, n) }

// PutFloat32 returns a buffer to the pool. It is safe to pass a nil slice.
func PutFloat32(buf []float32) { put(&float32Pools, buf) }

// GetBool retrieves a zeroed []bool buffer of length n, suitable for use
// as a visited mask. The caller must return it via PutBool when done.
func GetBool(n int) []bool { return get[bool](&boolPools, n) }

// PutBool returns a buffer to the pool. It is safe to pass a nil slice.
func PutBool(buf []bool) { put(&boolPools, buf) }

// GetUint8 retrieves a zeroed []uint8 buffer of length n.
// The caller must return it via PutUint8 when done.
func GetUint8(n int) []uint8 { return get[uint8](&uint8Pools, n) }

// PutUint8 returns a buffer to the pool. It is safe to pass a nil slice.
func PutUint8(buf []uint8) { put(&uint8Pools, buf) }
