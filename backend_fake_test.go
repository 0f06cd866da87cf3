package v4l2

import "fmt"

// fakeBackend is a scripted in-memory Backend used to exercise the state
// machine, buffer pool and control catalog without a video device.
type fakeBackend struct {
	caps    uint32
	format  Format
	granted uint32 // buffer count the driver "grants"; 0 grants the request
	bufLens []uint32

	// scripted failures, keyed by method name
	failOn map[string]error

	// pending frames served by DequeueBuffer as (index, payload) pairs
	frames []fakeFrame

	// observed state
	mapped     int
	unmapped   int
	queued     []uint32
	streaming  bool
	streamOns  int
	streamOffs int
	reqHistory []uint32
	cropResets int
	closed     bool
	closeCalls int
	lastFormat Format
	lastSetIv  Fraction
	setIvCalls int
	ctrlValues map[uint32]int32
	controls   map[uint32]Control
	menus      map[uint32]map[uint32]MenuEntry
	activeBufs [][]byte
}

type fakeFrame struct {
	index   uint32
	payload []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		caps:       V4L2_CAP_VIDEO_CAPTURE | V4L2_CAP_STREAMING,
		format:     Format{Width: 640, Height: 480, PixelFormat: PixFmtYUYV},
		bufLens:    []uint32{4096, 4096, 4096, 4096},
		failOn:     map[string]error{},
		ctrlValues: map[uint32]int32{},
		controls:   map[uint32]Control{},
		menus:      map[uint32]map[uint32]MenuEntry{},
	}
}

func (f *fakeBackend) fail(method string) error {
	return f.failOn[method]
}

func (f *fakeBackend) QueryCapability() (Capability, error) {
	if err := f.fail("QueryCapability"); err != nil {
		return Capability{}, err
	}
	return Capability{
		Driver:       "fake",
		Card:         "Fake Capture Card",
		Capabilities: f.caps,
	}, nil
}

func (f *fakeBackend) ResetCrop() error {
	f.cropResets++
	return f.fail("ResetCrop")
}

func (f *fakeBackend) SetFormat(format Format) error {
	if err := f.fail("SetFormat"); err != nil {
		return err
	}
	f.lastFormat = format
	// The fake device accepts whatever is asked.
	f.format = format
	return nil
}

func (f *fakeBackend) Format() (Format, error) {
	if err := f.fail("Format"); err != nil {
		return Format{}, err
	}
	return f.format, nil
}

func (f *fakeBackend) SetFrameInterval(iv Fraction) error {
	if err := f.fail("SetFrameInterval"); err != nil {
		return err
	}
	f.lastSetIv = iv
	f.setIvCalls++
	return nil
}

func (f *fakeBackend) RequestBuffers(count uint32) (uint32, error) {
	f.reqHistory = append(f.reqHistory, count)
	if err := f.fail("RequestBuffers"); err != nil {
		return 0, err
	}
	if count == 0 {
		f.activeBufs = nil
		return 0, nil
	}
	granted := f.granted
	if granted == 0 {
		granted = count
	}
	f.activeBufs = make([][]byte, granted)
	return granted, nil
}

func (f *fakeBackend) QueryBuffer(index uint32) (offset, length uint32, err error) {
	if err := f.fail("QueryBuffer"); err != nil {
		return 0, 0, err
	}
	if int(index) >= len(f.bufLens) {
		return 0, 0, fmt.Errorf("fake: no length scripted for buffer %d", index)
	}
	return index * 0x1000, f.bufLens[index], nil
}

func (f *fakeBackend) MapBuffer(offset, length uint32) ([]byte, error) {
	if err := f.fail("MapBuffer"); err != nil {
		return nil, err
	}
	// Fail a specific index when scripted, to test rollback.
	if err, ok := f.failOn[fmt.Sprintf("MapBuffer:%d", f.mapped)]; ok {
		return nil, err
	}
	f.mapped++
	buf := make([]byte, length)
	f.activeBufs[offset/0x1000] = buf
	return buf, nil
}

func (f *fakeBackend) UnmapBuffer(b []byte) error {
	f.unmapped++
	return nil
}

func (f *fakeBackend) EnqueueBuffer(index uint32) error {
	if err := f.fail("EnqueueBuffer"); err != nil {
		return err
	}
	f.queued = append(f.queued, index)
	return nil
}

func (f *fakeBackend) DequeueBuffer() (index, bytesused uint32, err error) {
	if err := f.fail("DequeueBuffer"); err != nil {
		return 0, 0, err
	}
	if len(f.frames) == 0 {
		return 0, 0, ErrNoFrame
	}
	frame := f.frames[0]
	f.frames = f.frames[1:]
	if int(frame.index) < len(f.activeBufs) {
		copy(f.activeBufs[frame.index], frame.payload)
	}
	return frame.index, uint32(len(frame.payload)), nil
}

func (f *fakeBackend) StreamOn() error {
	if err := f.fail("StreamOn"); err != nil {
		return err
	}
	f.streaming = true
	f.streamOns++
	return nil
}

func (f *fakeBackend) StreamOff() error {
	if err := f.fail("StreamOff"); err != nil {
		return err
	}
	f.streaming = false
	f.streamOffs++
	return nil
}

func (f *fakeBackend) QueryControl(id uint32) (Control, error) {
	ctrl, ok := f.controls[id]
	if !ok {
		return Control{}, ErrControlMissing
	}
	return ctrl, nil
}

func (f *fakeBackend) QueryMenu(ctrlID, index uint32) (MenuEntry, error) {
	entries, ok := f.menus[ctrlID]
	if !ok {
		return MenuEntry{}, fmt.Errorf("fake: no menu for control %#x", ctrlID)
	}
	entry, ok := entries[index]
	if !ok {
		return MenuEntry{}, fmt.Errorf("fake: menu index %d not populated", index)
	}
	return entry, nil
}

func (f *fakeBackend) ControlValue(id uint32) (int32, error) {
	if err := f.fail("ControlValue"); err != nil {
		return 0, err
	}
	value, ok := f.ctrlValues[id]
	if !ok {
		return 0, fmt.Errorf("fake: control %#x has no value", id)
	}
	return value, nil
}

func (f *fakeBackend) SetControlValue(id uint32, value int32) error {
	if err := f.fail("SetControlValue"); err != nil {
		return err
	}
	f.ctrlValues[id] = value
	return nil
}

func (f *fakeBackend) FormatDescriptions() ([]FormatDescription, error) {
	return []FormatDescription{
		{PixelFormat: PixFmtYUYV, Description: "YUYV 4:2:2"},
		{PixelFormat: PixFmtMJPEG, Description: "Motion-JPEG"},
	}, nil
}

func (f *fakeBackend) FrameSizes(FourCC) ([]FrameSize, error) {
	return []FrameSize{
		{MinWidth: 640, MaxWidth: 640, MinHeight: 480, MaxHeight: 480},
	}, nil
}

func (f *fakeBackend) FrameIntervals(FourCC, uint32, uint32) ([]Fraction, error) {
	return []Fraction{{Numerator: 1, Denominator: 30}}, nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	f.closeCalls++
	return f.fail("Close")
}
