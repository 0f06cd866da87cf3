package v4l2

import "fmt"

// YUYVToRGB converts a packed 4:2:2 YUYV frame to RGB24.
//
// Each 4-byte group of the input encodes two horizontally adjacent pixels
// sharing one chroma pair (Y0, U, Y1, V). The conversion is fixed-point:
// luma is shifted to a 16-bit scale, chroma offset by -128, and each
// channel computed with integer coefficients and a final >>8, saturating
// to [0, 255].
//
// The output holds width*height RGB triples in the input's pixel order.
// width must be even, since pixels are consumed in pairs.
func YUYVToRGB(yuyv []byte, width, height uint32) ([]byte, error) {
	if width%2 != 0 {
		return nil, fmt.Errorf("odd width %d: YUYV pixels come in pairs", width)
	}
	if need := int(width) * int(height) * 2; len(yuyv) < need {
		return nil, fmt.Errorf("short YUYV buffer: have %d bytes, need %d", len(yuyv), need)
	}

	rgb := make([]byte, width*height*3)
	src, dst := 0, 0
	for i := uint32(0); i < height; i++ {
		for j := uint32(0); j < width; j += 2 {
			y0 := int(yuyv[src]) << 8
			u := int(yuyv[src+1]) - 128
			y1 := int(yuyv[src+2]) << 8
			v := int(yuyv[src+3]) - 128
			src += 4

			rgb[dst] = yuvR(y0, v)
			rgb[dst+1] = yuvG(y0, u, v)
			rgb[dst+2] = yuvB(y0, u)
			rgb[dst+3] = yuvR(y1, v)
			rgb[dst+4] = yuvG(y1, u, v)
			rgb[dst+5] = yuvB(y1, u)
			dst += 6
		}
	}
	return rgb, nil
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func yuvR(y, v int) byte {
	return clamp8((y + 359*v) >> 8)
}

func yuvG(y, u, v int) byte {
	return clamp8((y + 88*v - 183*u) >> 8)
}

func yuvB(y, u int) byte {
	return clamp8((y + 454*u) >> 8)
}
