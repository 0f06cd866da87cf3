// lsvideo lists video capture devices and, in verbose mode, their
// capabilities, pixel formats, frame sizes and controls.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	v4l2 "github.com/camkit/go-v4l2"
)

var (
	verbose    = flag.Bool("v", false, "Verbose output: capabilities, formats and controls")
	devicePath = flag.String("d", "", "Show information for a specific device node (e.g. /dev/video0)")
	version    = flag.Bool("V", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("lsvideo (go-v4l2) %s\n", v4l2.Version())
		return
	}

	if *devicePath != "" {
		if err := showDevice(*devicePath); err != nil {
			log.Fatalf("%s: %v", *devicePath, err)
		}
		return
	}

	devices, err := v4l2.FindDevices()
	if err != nil {
		log.Fatalf("Failed to enumerate devices: %v", err)
	}
	if len(devices) == 0 {
		fmt.Println("No video devices found")
		return
	}

	for _, dev := range devices {
		fmt.Printf("%s: %s\n", dev.Path, dev.Name)
		if !*verbose {
			continue
		}
		if err := showDevice(dev.Path); err != nil {
			fmt.Fprintf(os.Stderr, "  (unreadable: %v)\n", err)
		}
	}
}

func showDevice(path string) error {
	cam, err := v4l2.Open(path)
	if err != nil {
		return err
	}
	defer cam.Close()

	capability, err := cam.Capability()
	if err != nil {
		return err
	}
	fmt.Printf("  Driver:  %s\n", capability.Driver)
	fmt.Printf("  Card:    %s\n", capability.Card)
	fmt.Printf("  Bus:     %s\n", capability.BusInfo)
	fmt.Printf("  Version: %s\n", capability.Version)

	displayFormats(cam)
	displayControls(cam)
	return nil
}

func displayFormats(cam *v4l2.Camera) {
	formats, err := cam.Formats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  (formats unreadable: %v)\n", err)
		return
	}
	fmt.Println("  Formats:")
	for _, format := range formats {
		fmt.Printf("    %s  %s\n", format.PixelFormat, format.Description)
		sizes, err := cam.FrameSizes(format.PixelFormat)
		if err != nil {
			continue
		}
		for _, size := range sizes {
			fmt.Printf("      %s", size)
			intervals, err := cam.FrameIntervals(format.PixelFormat, size.MaxWidth, size.MaxHeight)
			if err == nil && len(intervals) > 0 {
				fmt.Print(" @")
				for _, iv := range intervals {
					fmt.Printf(" %d/%d", iv.Numerator, iv.Denominator)
				}
			}
			fmt.Println()
		}
	}
}

func displayControls(cam *v4l2.Camera) {
	controls, err := cam.Controls()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  (controls unreadable: %v)\n", err)
		return
	}
	if len(controls) == 0 {
		return
	}
	fmt.Println("  Controls:")
	for _, ctrl := range controls {
		value, err := cam.ControlValue(ctrl.ID)
		current := "?"
		if err == nil {
			current = fmt.Sprintf("%d", value)
		}
		fmt.Printf("    %-32s %-12s min=%d max=%d step=%d default=%d value=%s\n",
			ctrl.Name, ctrl.Type, ctrl.Min, ctrl.Max, ctrl.Step, ctrl.Default, current)
		for i, entry := range ctrl.Menus {
			if !entry.Present {
				continue
			}
			if ctrl.Type == v4l2.ControlIntegerMenu {
				fmt.Printf("      %d: %d\n", i, entry.Value)
			} else {
				fmt.Printf("      %d: %s\n", i, entry.Name)
			}
		}
	}
}
