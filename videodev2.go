//go:build linux

package v4l2

// V4L2 protocol constants shared by all architectures. The values mirror
// include/uapi/linux/videodev2.h; ioctl numbers whose argument structs
// change size between 32- and 64-bit ABIs live in the videodev2_*.go
// architecture files.
const (
	VIDIOC_QUERYCAP            = 0x80685600
	VIDIOC_ENUM_FMT            = 0xc0405602
	VIDIOC_REQBUFS             = 0xc0145608
	VIDIOC_STREAMON            = 0x40045612
	VIDIOC_STREAMOFF           = 0x40045613
	VIDIOC_G_PARM              = 0xc0cc5615
	VIDIOC_S_PARM              = 0xc0cc5616
	VIDIOC_G_CTRL              = 0xc008561b
	VIDIOC_S_CTRL              = 0xc008561c
	VIDIOC_QUERYCTRL           = 0xc0445624
	VIDIOC_QUERYMENU           = 0xc02c5625
	VIDIOC_CROPCAP             = 0xc02c563a
	VIDIOC_S_CROP              = 0x4014563c
	VIDIOC_ENUM_FRAMESIZES     = 0xc02c564a
	VIDIOC_ENUM_FRAMEINTERVALS = 0xc034564b
)

const (
	V4L2_BUF_TYPE_VIDEO_CAPTURE = 1
	V4L2_MEMORY_MMAP            = 1
	V4L2_FIELD_NONE             = 1

	V4L2_FRMSIZE_TYPE_DISCRETE = 1
	V4L2_FRMSIZE_TYPE_STEPWISE = 3
	V4L2_FRMIVAL_TYPE_DISCRETE = 1
)

// Control types
const (
	V4L2_CTRL_TYPE_INTEGER      = 1
	V4L2_CTRL_TYPE_BOOLEAN      = 2
	V4L2_CTRL_TYPE_MENU         = 3
	V4L2_CTRL_TYPE_BUTTON       = 4
	V4L2_CTRL_TYPE_INTEGER64    = 5
	V4L2_CTRL_TYPE_CTRL_CLASS   = 6
	V4L2_CTRL_TYPE_STRING       = 7
	V4L2_CTRL_TYPE_BITMASK      = 8
	V4L2_CTRL_TYPE_INTEGER_MENU = 9
)

// Control flag bits
const (
	V4L2_CTRL_FLAG_DISABLED   = 0x0001
	V4L2_CTRL_FLAG_GRABBED    = 0x0002
	V4L2_CTRL_FLAG_READ_ONLY  = 0x0004
	V4L2_CTRL_FLAG_UPDATE     = 0x0008
	V4L2_CTRL_FLAG_INACTIVE   = 0x0010
	V4L2_CTRL_FLAG_SLIDER     = 0x0020
	V4L2_CTRL_FLAG_WRITE_ONLY = 0x0040
	V4L2_CTRL_FLAG_VOLATILE   = 0x0080
)

// v4l2Capability has size 104 bytes on all architectures.
type v4l2Capability struct {
	driver       [16]byte
	card         [32]byte
	busInfo      [32]byte
	version      uint32
	capabilities uint32
	deviceCaps   uint32
	reserved     [3]uint32
}

// v4l2PixFormat is the pix member of the format union, padded to the
// union's full 200 bytes.
type v4l2PixFormat struct {
	width        uint32
	height       uint32
	pixelformat  uint32
	field        uint32
	bytesperline uint32
	sizeimage    uint32
	colorspace   uint32
	priv         uint32
	flags        uint32
	ycbcrEnc     uint32
	quantization uint32
	xferFunc     uint32
	_            [152]byte
}

// v4l2Fract has size 8 bytes.
type v4l2Fract struct {
	numerator   uint32
	denominator uint32
}

// v4l2RequestBuffers has size 20 bytes.
type v4l2RequestBuffers struct {
	count        uint32
	typ          uint32
	memory       uint32
	capabilities uint32
	flags        uint8
	reserved     [3]uint8
}

// v4l2Timecode has size 16 bytes.
type v4l2Timecode struct {
	typ      uint32
	flags    uint32
	frames   uint8
	seconds  uint8
	minutes  uint8
	hours    uint8
	userbits [4]uint8
}

// v4l2CaptureParm is the capture member of the streamparm union, padded to
// the union's full 200 bytes.
type v4l2CaptureParm struct {
	capability   uint32
	capturemode  uint32
	timeperframe v4l2Fract
	extendedmode uint32
	readbuffers  uint32
	_            [176]byte
}

// v4l2Streamparm has size 204 bytes on all architectures.
type v4l2Streamparm struct {
	typ     uint32
	capture v4l2CaptureParm
}

// v4l2Control has size 8 bytes.
type v4l2Control struct {
	id    uint32
	value int32
}

// v4l2Queryctrl has size 68 bytes.
type v4l2Queryctrl struct {
	id           uint32
	typ          uint32
	name         [32]byte
	minimum      int32
	maximum      int32
	step         int32
	defaultValue int32
	flags        uint32
	reserved     [2]uint32
}

// v4l2Querymenu has size 44 bytes. The kernel declares it packed; the
// name/value union is modeled as raw bytes so no padding is introduced.
type v4l2Querymenu struct {
	id       uint32
	index    uint32
	u        [32]byte // union: name [32]byte / value int64
	reserved uint32
}

// v4l2Rect has size 16 bytes.
type v4l2Rect struct {
	left   int32
	top    int32
	width  uint32
	height uint32
}

// v4l2Cropcap has size 44 bytes.
type v4l2Cropcap struct {
	typ         uint32
	bounds      v4l2Rect
	defrect     v4l2Rect
	pixelaspect v4l2Fract
}

// v4l2Crop has size 20 bytes.
type v4l2Crop struct {
	typ uint32
	c   v4l2Rect
}

// v4l2Fmtdesc has size 64 bytes.
type v4l2Fmtdesc struct {
	index       uint32
	typ         uint32
	flags       uint32
	description [32]byte
	pixelformat uint32
	mbusCode    uint32
	reserved    [3]uint32
}

// v4l2Frmsizeenum has size 44 bytes. The discrete/stepwise union is raw.
type v4l2Frmsizeenum struct {
	index       uint32
	pixelFormat uint32
	typ         uint32
	u           [24]byte // union: discrete (8) / stepwise (24)
	reserved    [2]uint32
}

// v4l2Frmivalenum has size 52 bytes. The discrete/stepwise union is raw.
type v4l2Frmivalenum struct {
	index       uint32
	pixelFormat uint32
	width       uint32
	height      uint32
	typ         uint32
	u           [24]byte // union: discrete (8) / stepwise (24)
	reserved    [2]uint32
}
