// Package alloc hands out raw memory regions mapped directly from the
// system, bypassing the Go heap.
package alloc

import (
	"log"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageSize is the mapping granularity. Regions returned by Alloc are
// aligned to it.
const PageSize = 1 << 12

// MaxAlloc bounds a single region; a size beyond it is a corrupted
// layout computation, not a real request.
const MaxAlloc = 1 << 46

// Alloc maps a fresh zero-filled region of at least size bytes. align
// must be a nonzero power of two not exceeding PageSize; page alignment
// of the mapping covers it. Mapping failure is not recoverable.
func Alloc(size, align uintptr) unsafe.Pointer {
	if size == 0 || size > MaxAlloc {
		panic("no")
	}
	if align == 0 || align&(align-1) != 0 || align > PageSize {
		panic("no")
	}
	mem, err := unix.Mmap(-1, 0, int(pageRound(size)), unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		log.Fatal(err)
	}
	return unsafe.Pointer(&mem[0])
}

// Dealloc unmaps a region previously returned by Alloc, with the size
// that was requested then. Must be called exactly once per region.
func Dealloc(ptr unsafe.Pointer, size uintptr) {
	if ptr == nil || size == 0 {
		panic("no")
	}
	if err := unix.Munmap(unsafe.Slice((*byte)(ptr), pageRound(size))); err != nil {
		log.Fatal(err)
	}
}

// ArraySize returns n*elem, aborting when the product overflows the
// addressable range.
func ArraySize(n int, elem uintptr) uintptr {
	hi, lo := bits.Mul64(uint64(n), uint64(elem))
	if hi != 0 || lo > MaxAlloc {
		log.Fatalf("array layout %d*%d overflows", n, elem)
	}
	return uintptr(lo)
}

func pageRound(size uintptr) uintptr {
	return (size + PageSize - 1) &^ (PageSize - 1)
}
