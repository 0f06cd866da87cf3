//go:build linux && (386 || arm)

package v4l2

import "unsafe"

// Compile-time struct size assertions for the 32-bit ABI.
var (
	_ [0]struct{} = [unsafe.Sizeof(v4l2Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Format{}) - 204]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Buffer{}) - 68]struct{}{}
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

// ioctl numbers whose argument struct sizes differ from the 64-bit ABI.
const (
	VIDIOC_G_FMT    = 0xc0cc5604
	VIDIOC_S_FMT    = 0xc0cc5605
	VIDIOC_QUERYBUF = 0xc0445609
	VIDIOC_QBUF     = 0xc044560f
	VIDIOC_DQBUF    = 0xc0445611
)

// v4l2Format has size 204 bytes: the fmt union is 4-byte aligned on the
// 32-bit ABI, so no padding follows typ.
type v4l2Format struct {
	typ uint32
	pix v4l2PixFormat
}

// v4l2Buffer has size 68 bytes. timestamp stands in for struct timeval
// (8 bytes on 32-bit), and the m union shrinks to the 4-byte mmap offset.
type v4l2Buffer struct {
	index     uint32
	typ       uint32
	bytesused uint32
	flags     uint32
	field     uint32
	timestamp [8]byte
	timecode  v4l2Timecode
	sequence  uint32
	memory    uint32
	offset    uint32
	length    uint32
	reserved2 uint32
	requestFD int32
}
