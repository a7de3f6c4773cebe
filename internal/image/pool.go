package image

import "sync"

// Pool is a thread-safe pool for reusing packed scratch planes.
//
// Pool groups buffers by their dimensions and format so color conversion
// can reuse its intermediate BGRA frames instead of allocating two full
// frames per call.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*PlaneBuf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical plane specifications.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a new pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*PlaneBuf),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a packed buffer from the pool or creates a new one.
// Reused buffers are cleared. Returns an error for non-packed formats or
// invalid dimensions.
func (p *Pool) Get(width, height int, format Format) (*PlaneBuf, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	return NewPackedBuf(width, height, format)
}

// Put returns a buffer obtained from Get with the same format.
// If buf is nil or the bucket is at capacity, the buffer is discarded.
func (p *Pool) Put(buf *PlaneBuf, format Format) {
	if buf == nil {
		return
	}

	key := poolKey{width: buf.width, height: buf.height, format: format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(4)

// GetFromDefault retrieves a buffer from the default pool.
func GetFromDefault(width, height int, format Format) (*PlaneBuf, error) {
	return defaultPool.Get(width, height, format)
}

// PutToDefault returns a buffer to the default pool.
func PutToDefault(buf *PlaneBuf, format Format) {
	defaultPool.Put(buf, format)
}
