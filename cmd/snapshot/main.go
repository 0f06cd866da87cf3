// snapshot grabs a single frame from a capture device and writes it as a
// JPEG or PPM file. The device is asked for YUYV and the frame is converted
// to RGB before encoding.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"strings"
	"time"

	v4l2 "github.com/camkit/go-v4l2"
)

var (
	devicePath = flag.String("d", "/dev/video0", "Device node to capture from")
	width      = flag.Uint("w", 640, "Requested frame width")
	height     = flag.Uint("h", 480, "Requested frame height")
	output     = flag.String("o", "snapshot.jpg", "Output file (.jpg or .ppm)")
	skip       = flag.Uint("skip", 5, "Frames to discard while the sensor settles")
	timeout    = flag.Duration("timeout", 5*time.Second, "Give up after this long without a frame")
	quality    = flag.Int("q", 90, "JPEG quality")
)

func main() {
	flag.Parse()

	cam, err := v4l2.Open(*devicePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *devicePath, err)
	}
	defer cam.Close()

	cfg := v4l2.Config{
		Width:  uint32(*width),
		Height: uint32(*height),
		Format: v4l2.PixFmtYUYV,
	}
	if err := cam.Configure(cfg); err != nil {
		log.Fatalf("Failed to configure: %v", err)
	}
	w, h := cam.Dimensions()
	if w != uint32(*width) || h != uint32(*height) {
		fmt.Printf("Device adjusted size to %dx%d\n", w, h)
	}

	if err := cam.Start(); err != nil {
		log.Fatalf("Failed to start streaming: %v", err)
	}
	defer cam.Stop()

	frame, err := captureFrame(cam, *skip, *timeout)
	if err != nil {
		log.Fatalf("Failed to capture: %v", err)
	}

	rgb, err := v4l2.YUYVToRGB(frame, w, h)
	if err != nil {
		log.Fatalf("Failed to convert: %v", err)
	}

	if err := writeImage(*output, rgb, w, h); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", *output, w, h)
}

// captureFrame polls until a frame beyond the warm-up window arrives. The
// device is non-blocking, so misses return ErrNoFrame rather than waiting.
func captureFrame(cam *v4l2.Camera, skip uint, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	captured := uint(0)
	for {
		frame, err := cam.Capture()
		switch {
		case errors.Is(err, v4l2.ErrNoFrame):
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("no frame within %s", timeout)
			}
			time.Sleep(5 * time.Millisecond)
			continue
		case err != nil:
			return nil, err
		}
		if captured >= skip {
			return frame, nil
		}
		captured++
	}
}

func writeImage(path string, rgb []byte, width, height uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".ppm") {
		if _, err := fmt.Fprintf(f, "P6\n%d %d\n255\n", width, height); err != nil {
			return err
		}
		_, err := f.Write(rgb)
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for i := 0; i < len(rgb)/3; i++ {
		img.Pix[i*4+0] = rgb[i*3+0]
		img.Pix[i*4+1] = rgb[i*3+1]
		img.Pix[i*4+2] = rgb[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return jpeg.Encode(f, img, &jpeg.Options{Quality: *quality})
}
