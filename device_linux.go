//go:build linux

package v4l2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	// maxIoctlRetries bounds transparent retries of EINTR-interrupted
	// ioctls before the interruption surfaces as a normal error.
	maxIoctlRetries = 100
	// maxCloseRetries bounds attempts to close the device handle; the
	// handle is abandoned either way.
	maxCloseRetries = 10
)

// Device is the Linux V4L2 backend: an open capture device node driven
// with ioctls and mmap. It implements Backend.
type Device struct {
	path string
	fd   int
}

// Open opens the V4L2 device node at path non-blocking and wraps it in a
// Camera. The capability check is deferred until the first operation that
// needs it.
func Open(path string, opts ...Option) (*Camera, error) {
	dev, err := openDevice(path)
	if err != nil {
		return nil, err
	}
	return NewCamera(dev, opts...), nil
}

func openDevice(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.EACCES) {
			return nil, ErrPermissionDenied
		}
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENODEV) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	return &Device{path: path, fd: fd}, nil
}

// Path returns the device node this backend was opened from.
func (d *Device) Path() string {
	return d.path
}

// ioctl issues a V4L2 request, transparently retrying when a signal
// interrupts the syscall.
func (d *Device) ioctl(req uint, arg unsafe.Pointer) error {
	for i := 0; i < maxIoctlRetries; i++ {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), uintptr(req), uintptr(arg))
		if errno == 0 {
			return nil
		}
		if errno != unix.EINTR {
			return errno
		}
	}
	return unix.EINTR
}

// Close closes the device handle, retrying a bounded number of times. The
// handle is considered gone afterwards regardless of the outcome.
func (d *Device) Close() error {
	var err error
	for i := 0; i < maxCloseRetries; i++ {
		if err = unix.Close(d.fd); err == nil {
			break
		}
	}
	d.fd = -1
	return err
}

func (d *Device) QueryCapability() (Capability, error) {
	var c v4l2Capability
	if err := d.ioctl(VIDIOC_QUERYCAP, unsafe.Pointer(&c)); err != nil {
		return Capability{}, err
	}
	return Capability{
		Driver:  cstr(c.driver[:]),
		Card:    cstr(c.card[:]),
		BusInfo: cstr(c.busInfo[:]),
		Version: fmt.Sprintf("%d.%d.%d",
			byte(c.version>>16), byte(c.version>>8), byte(c.version)),
		Capabilities: c.capabilities,
	}, nil
}

func (d *Device) ResetCrop() error {
	cropcap := v4l2Cropcap{typ: V4L2_BUF_TYPE_VIDEO_CAPTURE}
	if err := d.ioctl(VIDIOC_CROPCAP, unsafe.Pointer(&cropcap)); err != nil {
		return err
	}
	crop := v4l2Crop{typ: V4L2_BUF_TYPE_VIDEO_CAPTURE, c: cropcap.defrect}
	return d.ioctl(VIDIOC_S_CROP, unsafe.Pointer(&crop))
}

func (d *Device) SetFormat(f Format) error {
	format := v4l2Format{
		typ: V4L2_BUF_TYPE_VIDEO_CAPTURE,
		pix: v4l2PixFormat{
			width:       f.Width,
			height:      f.Height,
			pixelformat: uint32(f.PixelFormat),
			field:       V4L2_FIELD_NONE,
		},
	}
	return d.ioctl(VIDIOC_S_FMT, unsafe.Pointer(&format))
}

func (d *Device) Format() (Format, error) {
	format := v4l2Format{typ: V4L2_BUF_TYPE_VIDEO_CAPTURE}
	if err := d.ioctl(VIDIOC_G_FMT, unsafe.Pointer(&format)); err != nil {
		return Format{}, err
	}
	return Format{
		Width:       format.pix.width,
		Height:      format.pix.height,
		PixelFormat: FourCC(format.pix.pixelformat),
	}, nil
}

func (d *Device) SetFrameInterval(iv Fraction) error {
	parm := v4l2Streamparm{typ: V4L2_BUF_TYPE_VIDEO_CAPTURE}
	parm.capture.timeperframe = v4l2Fract{
		numerator:   iv.Numerator,
		denominator: iv.Denominator,
	}
	return d.ioctl(VIDIOC_S_PARM, unsafe.Pointer(&parm))
}

func (d *Device) RequestBuffers(count uint32) (uint32, error) {
	rb := v4l2RequestBuffers{
		count:  count,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err := d.ioctl(VIDIOC_REQBUFS, unsafe.Pointer(&rb)); err != nil {
		return 0, err
	}
	return rb.count, nil
}

func (d *Device) QueryBuffer(index uint32) (offset, length uint32, err error) {
	buf := v4l2Buffer{
		index:  index,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err := d.ioctl(VIDIOC_QUERYBUF, unsafe.Pointer(&buf)); err != nil {
		return 0, 0, err
	}
	return buf.offset, buf.length, nil
}

func (d *Device) MapBuffer(offset, length uint32) ([]byte, error) {
	return unix.Mmap(d.fd, int64(offset), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (d *Device) UnmapBuffer(b []byte) error {
	return unix.Munmap(b)
}

func (d *Device) EnqueueBuffer(index uint32) error {
	buf := v4l2Buffer{
		index:  index,
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	return d.ioctl(VIDIOC_QBUF, unsafe.Pointer(&buf))
}

func (d *Device) DequeueBuffer() (index, bytesused uint32, err error) {
	buf := v4l2Buffer{
		typ:    V4L2_BUF_TYPE_VIDEO_CAPTURE,
		memory: V4L2_MEMORY_MMAP,
	}
	if err := d.ioctl(VIDIOC_DQBUF, unsafe.Pointer(&buf)); err != nil {
		// The device is non-blocking: EAGAIN only means no buffer has
		// been filled yet.
		if err == unix.EAGAIN {
			return 0, 0, ErrNoFrame
		}
		return 0, 0, err
	}
	return buf.index, buf.bytesused, nil
}

func (d *Device) StreamOn() error {
	typ := uint32(V4L2_BUF_TYPE_VIDEO_CAPTURE)
	return d.ioctl(VIDIOC_STREAMON, unsafe.Pointer(&typ))
}

func (d *Device) StreamOff() error {
	typ := uint32(V4L2_BUF_TYPE_VIDEO_CAPTURE)
	return d.ioctl(VIDIOC_STREAMOFF, unsafe.Pointer(&typ))
}

func (d *Device) QueryControl(id uint32) (Control, error) {
	qc := v4l2Queryctrl{id: id}
	if err := d.ioctl(VIDIOC_QUERYCTRL, unsafe.Pointer(&qc)); err != nil {
		if err == unix.EINVAL {
			return Control{}, ErrControlMissing
		}
		return Control{}, err
	}
	return Control{
		ID:      qc.id,
		Name:    cstr(qc.name[:]),
		Type:    controlTypeOf(qc.typ),
		Min:     qc.minimum,
		Max:     qc.maximum,
		Step:    qc.step,
		Default: qc.defaultValue,
		Flags: ControlFlags{
			Disabled:  qc.flags&V4L2_CTRL_FLAG_DISABLED != 0,
			Grabbed:   qc.flags&V4L2_CTRL_FLAG_GRABBED != 0,
			ReadOnly:  qc.flags&V4L2_CTRL_FLAG_READ_ONLY != 0,
			WriteOnly: qc.flags&V4L2_CTRL_FLAG_WRITE_ONLY != 0,
			Update:    qc.flags&V4L2_CTRL_FLAG_UPDATE != 0,
			Inactive:  qc.flags&V4L2_CTRL_FLAG_INACTIVE != 0,
			Slider:    qc.flags&V4L2_CTRL_FLAG_SLIDER != 0,
			Volatile:  qc.flags&V4L2_CTRL_FLAG_VOLATILE != 0,
		},
	}, nil
}

func (d *Device) QueryMenu(ctrlID, index uint32) (MenuEntry, error) {
	qm := v4l2Querymenu{id: ctrlID, index: index}
	if err := d.ioctl(VIDIOC_QUERYMENU, unsafe.Pointer(&qm)); err != nil {
		return MenuEntry{}, err
	}
	// The union carries a name for menu controls and a little-endian
	// int64 for integer-menu controls; the caller keeps the right one.
	return MenuEntry{
		Name:    cstr(qm.u[:]),
		Value:   int64(binary.LittleEndian.Uint64(qm.u[:8])),
		Present: true,
	}, nil
}

func (d *Device) ControlValue(id uint32) (int32, error) {
	ctrl := v4l2Control{id: id}
	if err := d.ioctl(VIDIOC_G_CTRL, unsafe.Pointer(&ctrl)); err != nil {
		return 0, err
	}
	return ctrl.value, nil
}

func (d *Device) SetControlValue(id uint32, value int32) error {
	ctrl := v4l2Control{id: id, value: value}
	return d.ioctl(VIDIOC_S_CTRL, unsafe.Pointer(&ctrl))
}

func (d *Device) FormatDescriptions() ([]FormatDescription, error) {
	var items []FormatDescription
	for i := uint32(0); ; i++ {
		fd := v4l2Fmtdesc{index: i, typ: V4L2_BUF_TYPE_VIDEO_CAPTURE}
		if err := d.ioctl(VIDIOC_ENUM_FMT, unsafe.Pointer(&fd)); err != nil {
			if err == unix.EINVAL {
				break
			}
			return nil, err
		}
		items = append(items, FormatDescription{
			PixelFormat: FourCC(fd.pixelformat),
			Description: cstr(fd.description[:]),
		})
	}
	return items, nil
}

func (d *Device) FrameSizes(f FourCC) ([]FrameSize, error) {
	var items []FrameSize
	for i := uint32(0); ; i++ {
		fs := v4l2Frmsizeenum{index: i, pixelFormat: uint32(f)}
		if err := d.ioctl(VIDIOC_ENUM_FRAMESIZES, unsafe.Pointer(&fs)); err != nil {
			if err == unix.EINVAL {
				break
			}
			return nil, err
		}
		u := fs.u[:]
		switch fs.typ {
		case V4L2_FRMSIZE_TYPE_DISCRETE:
			w := binary.LittleEndian.Uint32(u[0:4])
			h := binary.LittleEndian.Uint32(u[4:8])
			items = append(items, FrameSize{
				MinWidth: w, MaxWidth: w,
				MinHeight: h, MaxHeight: h,
			})
		case V4L2_FRMSIZE_TYPE_STEPWISE:
			items = append(items, FrameSize{
				MinWidth:   binary.LittleEndian.Uint32(u[0:4]),
				MaxWidth:   binary.LittleEndian.Uint32(u[4:8]),
				StepWidth:  binary.LittleEndian.Uint32(u[8:12]),
				MinHeight:  binary.LittleEndian.Uint32(u[12:16]),
				MaxHeight:  binary.LittleEndian.Uint32(u[16:20]),
				StepHeight: binary.LittleEndian.Uint32(u[20:24]),
			})
		}
	}
	return items, nil
}

func (d *Device) FrameIntervals(f FourCC, width, height uint32) ([]Fraction, error) {
	var items []Fraction
	for i := uint32(0); ; i++ {
		fi := v4l2Frmivalenum{
			index:       i,
			pixelFormat: uint32(f),
			width:       width,
			height:      height,
		}
		if err := d.ioctl(VIDIOC_ENUM_FRAMEINTERVALS, unsafe.Pointer(&fi)); err != nil {
			if err == unix.EINVAL {
				break
			}
			return nil, err
		}
		if fi.typ != V4L2_FRMIVAL_TYPE_DISCRETE {
			continue
		}
		items = append(items, Fraction{
			Numerator:   binary.LittleEndian.Uint32(fi.u[0:4]),
			Denominator: binary.LittleEndian.Uint32(fi.u[4:8]),
		})
	}
	return items, nil
}

func controlTypeOf(raw uint32) ControlType {
	switch raw {
	case V4L2_CTRL_TYPE_INTEGER:
		return ControlInteger
	case V4L2_CTRL_TYPE_BOOLEAN:
		return ControlBoolean
	case V4L2_CTRL_TYPE_MENU:
		return ControlMenu
	case V4L2_CTRL_TYPE_INTEGER_MENU:
		return ControlIntegerMenu
	case V4L2_CTRL_TYPE_BUTTON:
		return ControlButton
	default:
		return ControlOther
	}
}

// cstr trims a fixed-size kernel string field at its NUL terminator.
func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
