package alloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/rawvec/alloc"
)

func TestAllocAligned(t *testing.T) {
	for _, size := range []uintptr{1, 16, 4096, 4097, 1 << 20} {
		p := alloc.Alloc(size, 8)
		require.NotNil(t, p)
		assert.Equal(t, uintptr(0), uintptr(p)&(alloc.PageSize-1))
		alloc.Dealloc(p, size)
	}
}

func TestAllocReadWrite(t *testing.T) {
	const size = 3 * alloc.PageSize
	p := alloc.Alloc(size, 1)
	defer alloc.Dealloc(p, size)

	mem := unsafe.Slice((*byte)(p), size)
	for i := range mem {
		mem[i] = byte(i)
	}
	for i := range mem {
		require.Equal(t, byte(i), mem[i])
	}
}

func TestArraySize(t *testing.T) {
	assert.Equal(t, uintptr(40), alloc.ArraySize(10, 4))
	assert.Equal(t, uintptr(0), alloc.ArraySize(0, 8))
	assert.Equal(t, uintptr(24), alloc.ArraySize(3, 8))
}

func TestBadArgsPanic(t *testing.T) {
	assert.Panics(t, func() { alloc.Alloc(0, 8) })
	assert.Panics(t, func() { alloc.Alloc(16, 0) })
	assert.Panics(t, func() { alloc.Alloc(16, 3) })
	assert.Panics(t, func() { alloc.Alloc(16, alloc.PageSize*2) })
	assert.Panics(t, func() { alloc.Dealloc(nil, 16) })
}
