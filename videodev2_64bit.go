//go:build linux && (amd64 || arm64 || riscv64)

package v4l2

import "unsafe"

// Compile-time struct size assertions. The expressions fail to compile when
// a struct's size drifts from the kernel ABI.
var (
	_ [0]struct{} = [unsafe.Sizeof(v4l2Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Format{}) - 208]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Buffer{}) - 88]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2RequestBuffers{}) - 20]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Streamparm{}) - 204]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Queryctrl{}) - 68]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Querymenu{}) - 44]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Control{}) - 8]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Cropcap{}) - 44]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Crop{}) - 20]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Fmtdesc{}) - 64]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Frmsizeenum{}) - 44]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Frmivalenum{}) - 52]struct{}{}
)

// ioctl numbers whose argument struct sizes differ from the 32-bit ABI.
const (
	VIDIOC_G_FMT    = 0xc0d05604
	VIDIOC_S_FMT    = 0xc0d05605
	VIDIOC_QUERYBUF = 0xc0585609
	VIDIOC_QBUF     = 0xc058560f
	VIDIOC_DQBUF    = 0xc0585611
)

// v4l2Format has size 208 bytes: the fmt union is 8-byte aligned, so 4
// bytes of padding follow typ.
type v4l2Format struct {
	typ uint32
	_   [4]byte
	pix v4l2PixFormat
}

// v4l2Buffer has size 88 bytes. timestamp stands in for struct timeval
// (16 bytes), and the m union is 8 bytes with the mmap offset in its low
// word. Explicit padding keeps the Go layout identical to the kernel's,
// which aligns the timeval to 8 bytes.
type v4l2Buffer struct {
	index     uint32
	typ       uint32
	bytesused uint32
	flags     uint32
	field     uint32
	_         [4]byte
	timestamp [16]byte
	timecode  v4l2Timecode
	sequence  uint32
	memory    uint32
	offset    uint32
	_         [4]byte
	length    uint32
	reserved2 uint32
	requestFD int32
	_         [4]byte
}
