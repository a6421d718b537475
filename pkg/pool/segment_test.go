package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentPool(t *testing.T) {
	p := NewSegmentPool(16)
	assert.Equal(t, 16, p.Size())

	seg := p.Get()
	assert.Len(t, seg, 16)

	p.Put(seg[:4])
	assert.Len(t, p.Get(), 16)

	// Foreign segments are dropped rather than pooled.
	p.Put(make([]byte, 8))
	assert.Len(t, p.Get(), 16)
}

func TestForSizeSharesPools(t *testing.T) {
	assert.Same(t, ForSize(64), ForSize(64))
	assert.NotSame(t, ForSize(64), ForSize(128))
}
