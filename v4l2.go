// Package v4l2 captures video frames from Video4Linux2 devices without cgo.
//
// The package speaks the V4L2 ioctl protocol directly and moves frames
// through a pool of memory-mapped buffers shared with the kernel driver,
// enabling simple cross-compilation for Linux targets (amd64, arm64, 386,
// arm).
//
// # Capturing frames
//
// Open a device node, configure it, start streaming and poll for frames:
//
//	cam, err := v4l2.Open("/dev/video0")
//	if err != nil {
//	    return err
//	}
//	defer cam.Close()
//
//	if err := cam.Configure(v4l2.Config{Width: 640, Height: 480}); err != nil {
//	    return err
//	}
//	if err := cam.Start(); err != nil {
//	    return err
//	}
//	for {
//	    frame, err := cam.Capture()
//	    if errors.Is(err, v4l2.ErrNoFrame) {
//	        continue // device has not filled a buffer yet
//	    }
//	    ...
//	}
//
// Configure may be skipped entirely; the first Capture or Start then runs
// with whatever format the driver has active.
//
// # Controls
//
// Device-tunable parameters (brightness, contrast, ...) are discovered with
// Camera.Controls and read or written by numeric id with Camera.ControlValue
// and Camera.SetControlValue.
//
// A Camera is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
package v4l2

// Version returns the version of the go-v4l2 library.
func Version() string {
	return "1.0.0"
}
