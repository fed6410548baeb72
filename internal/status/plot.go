package status

// PlotBuffer is a fixed-capacity circular buffer of quantized temperature
// rows for the scroll plot. Capacity equals the plot's pixel width: once
// full, each append overwrites the oldest column and the plot scrolls.
type PlotBuffer struct {
	rows  []int
	head  int
	count int
}

// NewPlotBuffer creates a buffer with the given capacity.
func NewPlotBuffer(capacity int) *PlotBuffer {
	return &PlotBuffer{rows: make([]int, capacity)}
}

// Append stores one plot row.
func (b *PlotBuffer) Append(row int) {
	if len(b.rows) == 0 {
		return
	}
	if b.count < len(b.rows) {
		b.rows[(b.head+b.count)%len(b.rows)] = row
		b.count++
		return
	}
	b.rows[b.head] = row
	b.head = (b.head + 1) % len(b.rows)
}

// Reset empties the buffer.
func (b *PlotBuffer) Reset() {
	b.head = 0
	b.count = 0
}

// Len returns the number of stored rows.
func (b *PlotBuffer) Len() int { return b.count }

// Cap returns the buffer capacity.
func (b *PlotBuffer) Cap() int { return len(b.rows) }

// Points returns a copy of the stored rows, oldest first.
func (b *PlotBuffer) Points() []int {
	out := make([]int, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.rows[(b.head+i)%len(b.rows)]
	}
	return out
}
