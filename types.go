package v4l2

import "fmt"

// Fraction is a frame interval expressed as numerator/denominator seconds,
// e.g. 1/30 for 30 frames per second.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// Config selects the capture format applied by Camera.Configure.
//
// Width and Height must both be positive for a format to be requested at
// all; the device may adjust them to its nearest supported values. A zero
// Format means PixFmtYUYV. A zero-valued Interval leaves the device's frame
// timing untouched.
type Config struct {
	Width    uint32
	Height   uint32
	Format   FourCC
	Interval Fraction
}

// Format describes a negotiated capture format.
type Format struct {
	Width       uint32
	Height      uint32
	PixelFormat FourCC
}

// Capability reports the identity and feature bits a device returned from
// the capability query.
type Capability struct {
	Driver       string
	Card         string
	BusInfo      string
	Version      string
	Capabilities uint32
}

// FormatDescription is one entry of a device's supported-format enumeration.
type FormatDescription struct {
	PixelFormat FourCC
	Description string
}

// FrameSize describes a frame size supported for a pixel format. Fixed
// sizes have Min == Max and zero steps; stepwise ranges fill all fields.
type FrameSize struct {
	MinWidth  uint32
	MaxWidth  uint32
	StepWidth uint32

	MinHeight  uint32
	MaxHeight  uint32
	StepHeight uint32
}

func (s FrameSize) String() string {
	if s.StepWidth == 0 && s.StepHeight == 0 {
		return fmt.Sprintf("%dx%d", s.MaxWidth, s.MaxHeight)
	}
	return fmt.Sprintf("[%d-%d;%d]x[%d-%d;%d]",
		s.MinWidth, s.MaxWidth, s.StepWidth, s.MinHeight, s.MaxHeight, s.StepHeight)
}

// Backend is the device-protocol surface the Camera state machine drives.
// The Linux implementation speaks V4L2 ioctls over an open device node;
// the interface exists so the state machine, buffer pool and control
// catalog stay portable while only the handle backend is platform-specific.
//
// Buffer ownership follows the V4L2 hand-off model: a buffer enqueued with
// EnqueueBuffer belongs to the driver until DequeueBuffer returns its index,
// and must not be read in between.
type Backend interface {
	// QueryCapability reports the device identity and capability bits.
	QueryCapability() (Capability, error)
	// ResetCrop restores the default cropping rectangle. Devices without
	// cropping support reject this; callers treat the error as advisory.
	ResetCrop() error

	SetFormat(f Format) error
	Format() (Format, error)
	SetFrameInterval(iv Fraction) error

	// RequestBuffers asks the driver for count memory-mapped buffers and
	// returns the count actually granted, which may differ. Zero releases
	// all driver buffers.
	RequestBuffers(count uint32) (uint32, error)
	// QueryBuffer reports the mmap offset and byte length of buffer index.
	QueryBuffer(index uint32) (offset, length uint32, err error)
	MapBuffer(offset, length uint32) ([]byte, error)
	UnmapBuffer(b []byte) error

	EnqueueBuffer(index uint32) error
	// DequeueBuffer hands the next filled buffer to the caller, returning
	// its pool index and the number of valid bytes. When the device has no
	// frame ready the error is ErrNoFrame.
	DequeueBuffer() (index, bytesused uint32, err error)
	StreamOn() error
	StreamOff() error

	// QueryControl describes the control with the given id, or returns
	// ErrControlMissing for ids the device does not recognize.
	QueryControl(id uint32) (Control, error)
	// QueryMenu reports the menu entry at index for a menu control. Both
	// the name and integer-value variants are filled; the caller keeps the
	// one matching the control type.
	QueryMenu(ctrlID, index uint32) (MenuEntry, error)
	ControlValue(id uint32) (int32, error)
	SetControlValue(id uint32, value int32) error

	FormatDescriptions() ([]FormatDescription, error)
	FrameSizes(f FourCC) ([]FrameSize, error)
	FrameIntervals(f FourCC, width, height uint32) ([]Fraction, error)

	Close() error
}
