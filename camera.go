package v4l2

import (
	"errors"
	"fmt"
)

// Camera drives one capture device through its configure/stream lifecycle.
//
// The zero-to-streaming path is open → Configure → Start → Capture...
// → Stop → Close, but Configure is optional: Start and Capture lazily
// initialize the device with its currently active format when no explicit
// configuration was applied.
//
// A Camera owns its device handle, buffer pool and head buffer exclusively
// and performs no internal locking; see the package documentation for the
// concurrency contract.
type Camera struct {
	backend Backend
	log     LogFunc

	initialized bool
	streaming   bool
	width       uint32
	height      uint32
	format      FourCC
	pool        *bufferPool
	capability  Capability
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithLogger injects the log callback invoked synchronously during failing
// calls. Without it, events go to standard error.
func WithLogger(log LogFunc) Option {
	return func(c *Camera) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCamera wraps an already-open backend. Most callers use Open instead;
// NewCamera exists for alternate Backend implementations.
func NewCamera(backend Backend, opts ...Option) *Camera {
	c := &Camera{
		backend: backend,
		log:     StderrLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// oserr logs a failed OS-level operation and wraps its error.
func (c *Camera) oserr(op string, err error) error {
	c.log(SeverityError, op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// fail logs a semantic rejection and returns its sentinel.
func (c *Camera) fail(sentinel error) error {
	c.log(SeverityFailure, sentinel.Error(), nil)
	return sentinel
}

// init runs the one-time capability check. Idempotent; once a Camera is
// initialized it stays initialized for its lifetime.
func (c *Camera) init() error {
	if c.initialized {
		return nil
	}

	capability, err := c.backend.QueryCapability()
	if err != nil {
		return c.oserr("VIDIOC_QUERYCAP", err)
	}
	if capability.Capabilities&V4L2_CAP_VIDEO_CAPTURE == 0 {
		return c.fail(ErrNoCaptureSupport)
	}
	if capability.Capabilities&V4L2_CAP_STREAMING == 0 {
		return c.fail(ErrNoStreamingSupport)
	}

	// Devices without cropping support reject the reset; that is fine.
	c.backend.ResetCrop()

	c.capability = capability
	c.initialized = true
	return nil
}

// readFormat queries the device's active format, which after a set-format
// call carries the dimensions the device actually accepted.
func (c *Camera) readFormat() error {
	f, err := c.backend.Format()
	if err != nil {
		return c.oserr("VIDIOC_G_FMT", err)
	}
	c.width = f.Width
	c.height = f.Height
	c.format = f.PixelFormat
	return nil
}

// applyConfig performs format negotiation. The device may silently adjust
// the requested dimensions; the effective values are read back afterwards
// by the caller.
func (c *Camera) applyConfig(cfg Config) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		format := cfg.Format
		if format == 0 {
			format = PixFmtYUYV
		}
		f := Format{Width: cfg.Width, Height: cfg.Height, PixelFormat: format}
		if err := c.backend.SetFormat(f); err != nil {
			return c.oserr("VIDIOC_S_FMT", err)
		}
	}
	if cfg.Interval.Numerator != 0 && cfg.Interval.Denominator != 0 {
		if err := c.backend.SetFrameInterval(cfg.Interval); err != nil {
			return c.oserr("VIDIOC_S_PARM", err)
		}
	}
	return nil
}

// allocate builds the buffer pool sized to the fixed target count.
func (c *Camera) allocate() error {
	pool, op, err := allocateBuffers(c.backend, requestedBuffers)
	if err != nil {
		return c.oserr(op, err)
	}
	c.pool = pool
	return nil
}

// teardown stops streaming if active and releases the buffer pool.
func (c *Camera) teardown() {
	if c.streaming {
		c.backend.StreamOff()
		c.streaming = false
	}
	if c.pool != nil {
		c.pool.release(c.backend)
		c.pool = nil
	}
}

// Configure negotiates the capture format and (re)builds the buffer pool.
// If the camera is streaming it is stopped and its buffers released first.
// On failure the camera is left initialized but unconfigured: no buffers
// are held and a later Configure may try again.
func (c *Camera) Configure(cfg Config) error {
	if c.backend == nil {
		return ErrClosed
	}
	if c.pool != nil {
		c.teardown()
	}
	if err := c.init(); err != nil {
		return err
	}
	if err := c.applyConfig(cfg); err != nil {
		return err
	}
	if err := c.readFormat(); err != nil {
		return err
	}
	return c.allocate()
}

// load is the lazy setup path: when capture is requested on a camera that
// was never configured, initialize it and allocate buffers against whatever
// format is currently active on the device.
func (c *Camera) load() error {
	if err := c.init(); err != nil {
		return err
	}
	if c.pool == nil {
		if err := c.readFormat(); err != nil {
			return err
		}
		return c.allocate()
	}
	return nil
}

// Start enqueues every pool buffer and switches the device to streaming.
//
// A failure between the first enqueue and stream-on leaves the device with
// buffers queued but not streaming. There is no rollback for that state;
// the session must be treated as fatal and the camera closed and reopened.
func (c *Camera) Start() error {
	if c.backend == nil {
		return ErrClosed
	}
	if err := c.load(); err != nil {
		return err
	}
	for i := range c.pool.bufs {
		if err := c.backend.EnqueueBuffer(uint32(i)); err != nil {
			return c.oserr("VIDIOC_QBUF", err)
		}
	}
	if err := c.backend.StreamOn(); err != nil {
		return c.oserr("VIDIOC_STREAMON", err)
	}
	c.streaming = true
	return nil
}

// Stop switches streaming off. The buffer pool stays allocated; Configure
// or Close release it. Stopping a camera that never started streaming is a
// semantic failure and leaves the camera usable.
func (c *Camera) Stop() error {
	if c.backend == nil {
		return ErrClosed
	}
	if !c.streaming {
		return c.fail(ErrNotStreaming)
	}
	if err := c.backend.StreamOff(); err != nil {
		return c.oserr("VIDIOC_STREAMOFF", err)
	}
	c.streaming = false
	return nil
}

// Capture dequeues the next filled buffer, copies its valid bytes into the
// head buffer, and hands the buffer back to the driver.
//
// The device is opened non-blocking: when no frame is ready yet Capture
// returns ErrNoFrame and the caller is expected to poll. The returned slice
// aliases the head buffer and is overwritten by the next successful
// Capture.
func (c *Camera) Capture() ([]byte, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}
	if err := c.load(); err != nil {
		return nil, err
	}

	index, bytesused, err := c.backend.DequeueBuffer()
	if errors.Is(err, ErrNoFrame) {
		return nil, ErrNoFrame
	}
	if err != nil {
		return nil, c.oserr("VIDIOC_DQBUF", err)
	}
	if int(index) >= len(c.pool.bufs) {
		return nil, c.fail(fmt.Errorf("driver returned buffer index %d outside pool of %d", index, len(c.pool.bufs)))
	}

	c.pool.snapshot(c.pool.bufs[index], bytesused)

	if err := c.backend.EnqueueBuffer(index); err != nil {
		return nil, c.oserr("VIDIOC_QBUF", err)
	}
	return c.pool.frame(), nil
}

// Frame returns the latest captured frame without touching the device. It
// is empty before the first successful Capture.
func (c *Camera) Frame() []byte {
	if c.pool == nil {
		return nil
	}
	return c.pool.frame()
}

// Dimensions reports the effective capture size negotiated with the device,
// zero before the first Configure, Start or Capture.
func (c *Camera) Dimensions() (width, height uint32) {
	return c.width, c.height
}

// PixelFormat reports the effective pixel format, zero before setup.
func (c *Camera) PixelFormat() FourCC {
	return c.format
}

// Capability reports the device identity, running the capability check
// first if it has not happened yet.
func (c *Camera) Capability() (Capability, error) {
	if c.backend == nil {
		return Capability{}, ErrClosed
	}
	if err := c.init(); err != nil {
		return Capability{}, err
	}
	return c.capability, nil
}

// Formats enumerates the pixel formats the device can capture.
func (c *Camera) Formats() ([]FormatDescription, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}
	return c.backend.FormatDescriptions()
}

// FrameSizes enumerates the frame sizes supported for a pixel format.
func (c *Camera) FrameSizes(f FourCC) ([]FrameSize, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}
	return c.backend.FrameSizes(f)
}

// FrameIntervals enumerates the discrete frame intervals supported for a
// pixel format at the given size.
func (c *Camera) FrameIntervals(f FourCC, width, height uint32) ([]Fraction, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}
	return c.backend.FrameIntervals(f, width, height)
}

// Close stops streaming, releases the buffer pool and closes the device
// handle, all best-effort. Close never fails observably and a closed
// camera rejects further calls with ErrClosed.
func (c *Camera) Close() error {
	if c.backend == nil {
		return nil
	}
	c.teardown()
	c.backend.Close()
	c.backend = nil
	return nil
}
