// Package vec implements a growable contiguous buffer on raw mapped
// memory.
package vec

import (
	"unsafe"

	"github.com/modern-go/reflect2"

	"github.com/funny-falcon/rawvec/alloc"
)

// Vec owns one contiguous mapped region sized for cap elements, of
// which the first len slots hold live values. Slots past len are
// uninitialized and never read back as T.
//
// The region lives outside the Go heap, so T must not contain Go
// pointers: the garbage collector cannot see it. A Vec is single-owner
// and not safe for concurrent use.
type Vec[T any] struct {
	ptr   unsafe.Pointer
	len   int
	cap   int
	size  uintptr
	align uintptr
}

// New returns an empty Vec. No memory is mapped until the first Push.
// Zero-sized element types are rejected.
func New[T any]() *Vec[T] {
	typ := reflect2.TypeOf(*new(T)).Type1()
	if typ.Size() == 0 {
		panic("no")
	}
	return &Vec[T]{size: typ.Size(), align: uintptr(typ.Align())}
}

// Push appends val, growing the region when full. Runs out of memory
// only fatally.
func (v *Vec[T]) Push(val T) {
	if v.len == v.cap {
		v.grow()
	}
	*(*T)(v.at(v.len)) = val
	v.len++
}

// grow swaps in a region of twice the capacity (4 slots to start) and
// relocates the live slots byte-for-byte. The old region is released
// without touching the values: they live on in the new region only.
func (v *Vec[T]) grow() {
	ncap := 4
	if v.cap > 0 {
		ncap = v.cap * 2
	}
	nptr := alloc.Alloc(alloc.ArraySize(ncap, v.size), v.align)
	if v.cap > 0 {
		n := uintptr(v.len) * v.size
		copy(unsafe.Slice((*byte)(nptr), n), unsafe.Slice((*byte)(v.ptr), n))
		alloc.Dealloc(v.ptr, alloc.ArraySize(v.cap, v.size))
	}
	v.ptr = nptr
	v.cap = ncap
}

// Get returns the element at index i, or nil when i is out of range.
// The pointer may be written through; it stays valid until the next
// growth or Free.
func (v *Vec[T]) Get(i int) *T {
	if uint(i) >= uint(v.len) {
		return nil
	}
	return (*T)(v.at(i))
}

func (v *Vec[T]) at(i int) unsafe.Pointer {
	return unsafe.Pointer(uintptr(v.ptr) + uintptr(i)*v.size)
}

func (v *Vec[T]) Len() int { return v.len }

func (v *Vec[T]) Cap() int { return v.cap }

func (v *Vec[T]) Empty() bool { return v.len == 0 }

// Free unmaps the backing region and resets the Vec to its empty
// state. Safe to call on an empty Vec; the Vec may be reused after.
func (v *Vec[T]) Free() {
	if v.cap == 0 {
		return
	}
	alloc.Dealloc(v.ptr, alloc.ArraySize(v.cap, v.size))
	v.ptr = nil
	v.len = 0
	v.cap = 0
}
