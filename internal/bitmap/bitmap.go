// Package bitmap is the bit get/set primitive the rest of the file system
// is built on: bit i lives at byte i>>3, mask 1<<(i&7), exactly the layout
// github.com/boljen/go-bitmap uses internally.
package bitmap

import (
	gobitmap "github.com/boljen/go-bitmap"
)

// Bitmap is a fixed-size bit array used for the inode and data-block
// allocation maps.
type Bitmap struct {
	bits gobitmap.Bitmap
	size int
}

// New creates a Bitmap with size bits, all initially clear.
func New(size int) Bitmap {
	return Bitmap{bits: gobitmap.NewSlice(size), size: size}
}

// FromBytes wraps an existing byte slice (as read from disk) as a Bitmap
// of size bits. The slice is used directly, not copied.
func FromBytes(raw []byte, size int) Bitmap {
	return Bitmap{bits: gobitmap.Bitmap(raw), size: size}
}

// Get reports whether bit i is set.
func (b Bitmap) Get(i int) bool {
	return b.bits.Get(i)
}

// Set sets or clears bit i.
func (b Bitmap) Set(i int, value bool) {
	b.bits.Set(i, value)
}

// Len returns the number of bits the bitmap was sized for.
func (b Bitmap) Len() int {
	return b.size
}

// Bytes returns the raw byte slice backing the bitmap, sized to hold Len()
// bits, suitable for writing out to disk verbatim.
func (b Bitmap) Bytes() []byte {
	return b.bits.Data(false)
}

// FindClear scans from bit 0 upward and returns the index of the first
// clear bit. Returns -1 if every bit is set.
func (b Bitmap) FindClear() int {
	for i := 0; i < b.size; i++ {
		if !b.bits.Get(i) {
			return i
		}
	}
	return -1
}
