// streamcap records a burst of frames from a capture device, converting and
// encoding them to numbered JPEG files off the capture goroutine so slow
// disks do not stall the driver queue.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	v4l2 "github.com/camkit/go-v4l2"
)

var (
	devicePath = flag.String("d", "/dev/video0", "Device node to capture from")
	width      = flag.Uint("w", 640, "Requested frame width")
	height     = flag.Uint("h", 480, "Requested frame height")
	count      = flag.Uint("n", 30, "Number of frames to record")
	fps        = flag.Uint("fps", 30, "Requested frame rate")
	outDir     = flag.String("o", "frames", "Output directory")
	workers    = flag.Int("j", runtime.NumCPU(), "Parallel encoder workers")
)

// numbered pairs a frame's private copy with its sequence number.
type numbered struct {
	seq  uint
	data []byte
}

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", *outDir, err)
	}

	cam, err := v4l2.Open(*devicePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *devicePath, err)
	}
	defer cam.Close()

	cfg := v4l2.Config{
		Width:    uint32(*width),
		Height:   uint32(*height),
		Format:   v4l2.PixFmtYUYV,
		Interval: v4l2.Fraction{Numerator: 1, Denominator: uint32(*fps)},
	}
	if err := cam.Configure(cfg); err != nil {
		log.Fatalf("Failed to configure: %v", err)
	}
	w, h := cam.Dimensions()

	if err := cam.Start(); err != nil {
		log.Fatalf("Failed to start streaming: %v", err)
	}
	defer cam.Stop()

	start := time.Now()
	if err := record(cam, w, h); err != nil {
		log.Fatalf("Recording failed: %v", err)
	}
	elapsed := time.Since(start)
	fmt.Printf("Recorded %d frames (%dx%d) in %s (%.1f fps)\n",
		*count, w, h, elapsed.Round(time.Millisecond),
		float64(*count)/elapsed.Seconds())
}

// record runs the capture loop on one goroutine and a pool of encoder
// workers beside it. The camera is only ever touched by the capture
// goroutine; workers receive private copies of each frame.
func record(cam *v4l2.Camera, w, h uint32) error {
	g, ctx := errgroup.WithContext(context.Background())
	frames := make(chan numbered, *workers)

	g.Go(func() error {
		defer close(frames)
		for seq := uint(0); seq < *count; {
			frame, err := cam.Capture()
			if errors.Is(err, v4l2.ErrNoFrame) {
				time.Sleep(time.Millisecond)
				continue
			}
			if err != nil {
				return err
			}
			// The returned slice aliases the camera's head buffer and
			// is overwritten by the next Capture.
			copied := make([]byte, len(frame))
			copy(copied, frame)

			select {
			case frames <- numbered{seq: seq, data: copied}:
				seq++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < *workers; i++ {
		g.Go(func() error {
			for frame := range frames {
				if err := encodeFrame(frame, w, h); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

func encodeFrame(frame numbered, w, h uint32) error {
	rgb, err := v4l2.YUYVToRGB(frame.data, w, h)
	if err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for i := 0; i < len(rgb)/3; i++ {
		img.Pix[i*4+0] = rgb[i*3+0]
		img.Pix[i*4+1] = rgb[i*3+1]
		img.Pix[i*4+2] = rgb[i*3+2]
		img.Pix[i*4+3] = 0xff
	}

	path := filepath.Join(*outDir, fmt.Sprintf("frame-%04d.jpg", frame.seq))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
