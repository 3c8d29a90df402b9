package gldraw

// Buffer is a view into a device buffer object.
type Buffer interface {
	// BufferID returns the device object name.
	BufferID() uint32

	// OffsetBytes returns the view's byte offset inside the buffer object.
	OffsetBytes() int

	// SizeBytes returns the view's length in bytes.
	SizeBytes() int

	// ElementCount returns the number of elements (vertices, indices or
	// indirect draw records) in the view.
	ElementCount() int

	// Fence returns the slot guarding the buffer, or nil if reads are not tracked.
	Fence() *FenceSlot
}

// BufferSlice is the plain Buffer implementation handed out by a
// resource layer. Slices of one buffer object should share a FenceSlot.
type BufferSlice struct {
	ID     uint32
	Offset int
	Size   int
	Count  int
	Slot   *FenceSlot
}

// NewBufferSlice returns a view over a whole buffer object with its own fence slot.
func NewBufferSlice(id uint32, size, count int) *BufferSlice {
	return &BufferSlice{ID: id, Size: size, Count: count, Slot: new(FenceSlot)}
}

// Slice returns a view of count elements starting at element first.
// The returned view shares the fence slot of b.
func (b *BufferSlice) Slice(first, count int) *BufferSlice {
	stride := 0
	if b.Count > 0 {
		stride = b.Size / b.Count
	}
	return &BufferSlice{
		ID:     b.ID,
		Offset: b.Offset + first*stride,
		Size:   count * stride,
		Count:  count,
		Slot:   b.Slot,
	}
}

func (b *BufferSlice) BufferID() uint32  { return b.ID }
func (b *BufferSlice) OffsetBytes() int  { return b.Offset }
func (b *BufferSlice) SizeBytes() int    { return b.Size }
func (b *BufferSlice) ElementCount() int { return b.Count }
func (b *BufferSlice) Fence() *FenceSlot { return b.Slot }
