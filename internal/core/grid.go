package core

// CellBuffer stores one display byte per lattice site in row-major order.
type CellBuffer struct {
	W, H int
	data []uint8
}

// NewCellBuffer allocates a buffer with the given dimensions.
func NewCellBuffer(w, h int) *CellBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &CellBuffer{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so renderers can read it without copying.
func (b *CellBuffer) Cells() []uint8 { return b.data }

// Index returns the slice index for (x, y) after toroidal wrapping.
func (b *CellBuffer) Index(x, y int) int {
	x = (x%b.W + b.W) % b.W
	y = (y%b.H + b.H) % b.H
	return y*b.W + x
}

// Set stores v at the wrapped site (x, y).
func (b *CellBuffer) Set(x, y int, v uint8) { b.data[b.Index(x, y)] = v }

// Fill assigns every cell from fn, which receives the linear index.
func (b *CellBuffer) Fill(fn func(i int) uint8) {
	for i := range b.data {
		b.data[i] = fn(i)
	}
}
