package v4l2

// requestedBuffers is the buffer count asked of the driver. The driver may
// grant a different number; the pool always reflects the granted count.
const requestedBuffers = 4

// bufferPool owns the memory-mapped frame buffers shared with the driver,
// plus the head buffer holding a private copy of the latest captured frame.
// Which side may touch a mapped buffer at any moment is decided by the
// enqueue/dequeue hand-off, not by this type.
type bufferPool struct {
	bufs    [][]byte
	head    []byte
	headLen uint32
}

// allocateBuffers requests count buffers from the device, maps each granted
// buffer, and sizes the head buffer to the largest mapping. Allocation is
// atomic: a failure on any buffer unmaps everything mapped so far, so no
// partial pool survives.
func allocateBuffers(b Backend, count uint32) (*bufferPool, string, error) {
	granted, err := b.RequestBuffers(count)
	if err != nil {
		return nil, "VIDIOC_REQBUFS", err
	}

	pool := &bufferPool{bufs: make([][]byte, 0, granted)}
	var bufMax uint32
	for i := uint32(0); i < granted; i++ {
		offset, length, err := b.QueryBuffer(i)
		if err != nil {
			pool.unmapAll(b)
			return nil, "VIDIOC_QUERYBUF", err
		}
		mem, err := b.MapBuffer(offset, length)
		if err != nil {
			pool.unmapAll(b)
			return nil, "mmap", err
		}
		pool.bufs = append(pool.bufs, mem)
		if length > bufMax {
			bufMax = length
		}
	}
	pool.head = make([]byte, bufMax)
	return pool, "", nil
}

// release unmaps every buffer and frees the driver-side buffer set. The
// caller must have stopped streaming first; releasing a pool the device is
// still filling is undefined.
func (p *bufferPool) release(b Backend) {
	p.unmapAll(b)
	// Count zero frees the driver's buffer queue so the pool can be
	// re-created later. Best effort.
	b.RequestBuffers(0)
	p.head = nil
	p.headLen = 0
}

func (p *bufferPool) unmapAll(b Backend) {
	for _, buf := range p.bufs {
		b.UnmapBuffer(buf)
	}
	p.bufs = nil
}

// snapshot copies the valid byte range of buf into the head buffer.
func (p *bufferPool) snapshot(buf []byte, bytesused uint32) {
	if bytesused > uint32(len(p.head)) {
		bytesused = uint32(len(p.head))
	}
	copy(p.head, buf[:bytesused])
	p.headLen = bytesused
}

// frame returns the latest snapshot. The slice aliases the head buffer and
// stays valid until the next snapshot overwrites it.
func (p *bufferPool) frame() []byte {
	return p.head[:p.headLen]
}
