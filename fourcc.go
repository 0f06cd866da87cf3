package v4l2

// FourCC is a pixel format tag: four printable characters packed
// little-endian into a 32-bit id, as used by the V4L2 API to both request
// and report pixel formats.
type FourCC uint32

// Common capture formats. See /usr/include/linux/videodev2.h for the
// full list supported by a given kernel.
const (
	PixFmtYUYV  FourCC = 0x56595559 // "YUYV" packed 4:2:2
	PixFmtUYVY  FourCC = 0x59565955 // "UYVY" packed 4:2:2, chroma first
	PixFmtMJPEG FourCC = 0x47504a4d // "MJPG" motion JPEG
	PixFmtH264  FourCC = 0x34363248 // "H264"
	PixFmtRGB24 FourCC = 0x33424752 // "RGB3" 8:8:8
	PixFmtYU12  FourCC = 0x32315559 // "YU12" planar 4:2:0
)

// FourCCFromString packs the first four bytes of s into a FourCC. The
// caller must supply exactly four characters; no validation is performed.
func FourCCFromString(s string) FourCC {
	return FourCC(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24)
}

// String returns the four characters of the tag. Exact inverse of
// FourCCFromString for any four-character input.
func (f FourCC) String() string {
	return string([]byte{
		byte(f),
		byte(f >> 8),
		byte(f >> 16),
		byte(f >> 24),
	})
}
