package v4l2

// Capability bits reported in Capability.Capabilities. They keep their
// kernel names and values so reports can be matched against videodev2.h;
// unlike the ioctl numbers they carry no ABI dependency, so the Camera
// state machine can test them on any platform.
const (
	V4L2_CAP_VIDEO_CAPTURE = 0x00000001
	V4L2_CAP_STREAMING     = 0x04000000
)

// The user-control id space probed by the control catalog.
const (
	V4L2_CID_BASE   = 0x00980900
	V4L2_CID_LASTP1 = V4L2_CID_BASE + 44
)
