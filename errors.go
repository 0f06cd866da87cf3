package v4l2

import "fmt"

// Error values
var (
	ErrDeviceNotFound     = fmt.Errorf("device not found")
	ErrPermissionDenied   = fmt.Errorf("permission denied")
	ErrClosed             = fmt.Errorf("device closed")
	ErrNoFrame            = fmt.Errorf("no frame ready")
	ErrNotStreaming       = fmt.Errorf("not streaming")
	ErrNoCaptureSupport   = fmt.Errorf("no capture")
	ErrNoStreamingSupport = fmt.Errorf("no streaming")
	ErrControlMissing     = fmt.Errorf("control not recognized")
)
