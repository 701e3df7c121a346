package bufpool

import "sync"

// defaultSizeClasses fit a single acquisition context's read/scratch/payload
// buffers at a modest default geometry (sensors*channels*samples_per_frame).
// Callers with a larger or smaller acquisition geometry should construct
// their own Pool via NewWithClasses.
var defaultSizeClasses = []int{4096, 65536, 1 << 20}

type classPool struct {
	size int
	pool *sync.Pool
}

// Pool provides sized byte slices backed by reusable buffers to reduce GC
// churn across repeated context open/close cycles (e.g. reconnects).
type Pool struct {
	pools []classPool
}

var defaultPool = New()

// Get acquires a buffer from the package-level default pool.
func Get(size int) []byte {
	return defaultPool.Get(size)
}

// Put releases a buffer back to the package-level default pool.
func Put(buf []byte) {
	defaultPool.Put(buf)
}

// New creates a buffer pool using the package's default size classes.
func New() *Pool {
	return NewWithClasses(defaultSizeClasses)
}

// NewWithClasses creates a buffer pool with caller-supplied size classes.
// Classes need not be sorted; Get always picks the nearest class that can
// accommodate the request.
func NewWithClasses(sizeClasses []int) *Pool {
	pools := make([]classPool, len(sizeClasses))
	for i, classSize := range sizeClasses {
		size := classSize
		pools[i] = classPool{
			size: size,
			pool: &sync.Pool{
				New: func() any {
					return make([]byte, size)
				},
			},
		}
	}
	return &Pool{pools: pools}
}

// Get returns a byte slice whose length matches the requested size and whose capacity is the
// nearest predefined size class that can accommodate the request. Requests larger than the
// maximum size class allocate a fresh slice without pooling.
func (p *Pool) Get(size int) []byte {
	if p == nil || size <= 0 {
		return nil
	}

	best := -1
	for i := range p.pools {
		if p.pools[i].size < size {
			continue
		}
		if best == -1 || p.pools[i].size < p.pools[best].size {
			best = i
		}
	}
	if best == -1 {
		return make([]byte, size)
	}
	buf := p.pools[best].pool.Get().([]byte)
	return buf[:size]
}

// Put returns the provided buffer to the pool if its capacity matches a predefined size class.
// Buffers that do not match any class are discarded. The buffer is zeroed before reuse to avoid
// leaking data across callers.
func (p *Pool) Put(buf []byte) {
	if p == nil || buf == nil {
		return
	}

	capBuf := cap(buf)
	for i := range p.pools {
		class := &p.pools[i]
		if capBuf == class.size {
			full := buf[:class.size]
			clear(full)
			class.pool.Put(full)
			return
		}
	}
}
