package pool

import (
	"sync"
)

// SegmentPool recycles fixed-size byte segments.
type SegmentPool struct {
	size int       // Length of every segment.
	pool sync.Pool // Thread-safe pool of *[]byte.
}

// Creates a new segment pool handing out segments of the given size.
func NewSegmentPool(size int) *SegmentPool {
	return &SegmentPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				seg := make([]byte, size)
				return &seg
			},
		},
	}
}

// Size returns the length of the segments in this pool.
func (sp *SegmentPool) Size() int {
	return sp.size
}

// Retrieves a segment from the pool. Its contents are unspecified.
func (sp *SegmentPool) Get() []byte {
	return *sp.pool.Get().(*[]byte)
}

// Returns a segment to the pool.
func (sp *SegmentPool) Put(seg []byte) {
	// Don't pool foreign segments.
	if cap(seg) != sp.size {
		return
	}

	seg = seg[:sp.size]
	sp.pool.Put(&seg)
}

var (
	poolsMu sync.Mutex
	pools   = map[int]*SegmentPool{}
)

// ForSize returns the process-wide pool for segments of size bytes.
func ForSize(size int) *SegmentPool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	p, ok := pools[size]
	if !ok {
		p = NewSegmentPool(size)
		pools[size] = p
	}
	return p
}
