package v4l2

import "testing"

func TestFourCCRoundTrip(t *testing.T) {
	tags := []string{"YUYV", "MJPG", "RGB3", "H264", "UYVY", "YU12", "ABCD", "0000", "    "}

	for _, tag := range tags {
		t.Run(tag, func(t *testing.T) {
			if got := FourCCFromString(tag).String(); got != tag {
				t.Errorf("round trip of %q = %q", tag, got)
			}
		})
	}
}

func TestFourCCKnownValue(t *testing.T) {
	// 'Y' | 'U'<<8 | 'Y'<<16 | 'V'<<24
	if got := FourCCFromString("YUYV"); got != 0x56595559 {
		t.Errorf("FourCCFromString(\"YUYV\") = %#x, want 0x56595559", uint32(got))
	}
}

func TestFourCCConstants(t *testing.T) {
	tests := []struct {
		tag  string
		want FourCC
	}{
		{"YUYV", PixFmtYUYV},
		{"UYVY", PixFmtUYVY},
		{"MJPG", PixFmtMJPEG},
		{"H264", PixFmtH264},
		{"RGB3", PixFmtRGB24},
		{"YU12", PixFmtYU12},
	}

	for _, tt := range tests {
		if got := FourCCFromString(tt.tag); got != tt.want {
			t.Errorf("FourCCFromString(%q) = %#x, want %#x", tt.tag, uint32(got), uint32(tt.want))
		}
		if got := tt.want.String(); got != tt.tag {
			t.Errorf("%#x.String() = %q, want %q", uint32(tt.want), got, tt.tag)
		}
	}
}
