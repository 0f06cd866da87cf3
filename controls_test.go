package v4l2

import (
	"errors"
	"testing"
)

func TestControlsCatalog(t *testing.T) {
	fake := newFakeBackend()

	brightness := V4L2_CID_BASE + 0
	contrast := V4L2_CID_BASE + 1
	powerLine := V4L2_CID_BASE + 24

	fake.controls[uint32(brightness)] = Control{
		ID:      uint32(brightness),
		Name:    "Brightness",
		Type:    ControlInteger,
		Min:     -64,
		Max:     64,
		Step:    1,
		Default: 0,
		Flags:   ControlFlags{Slider: true},
	}
	fake.controls[uint32(contrast)] = Control{
		ID:   uint32(contrast),
		Name: "Contrast",
		Type: ControlInteger,
		Min:  0,
		Max:  95,
		Step: 1,
	}
	fake.controls[uint32(powerLine)] = Control{
		ID:   uint32(powerLine),
		Name: "Power Line Frequency",
		Type: ControlMenu,
		Max:  2,
	}
	fake.menus[uint32(powerLine)] = map[uint32]MenuEntry{
		0: {Name: "Disabled", Value: 99},
		2: {Name: "60 Hz", Value: 99},
	}

	cam := NewCamera(fake)
	controls, err := cam.Controls()
	if err != nil {
		t.Fatalf("Controls: %v", err)
	}
	if len(controls) != 3 {
		t.Fatalf("got %d controls, want 3", len(controls))
	}

	// Discovery runs in id order regardless of map iteration order.
	if controls[0].Name != "Brightness" || controls[1].Name != "Contrast" ||
		controls[2].Name != "Power Line Frequency" {
		t.Errorf("control order: %s, %s, %s", controls[0].Name, controls[1].Name, controls[2].Name)
	}

	if controls[0].Min != -64 || controls[0].Max != 64 || !controls[0].Flags.Slider {
		t.Errorf("brightness bounds/flags wrong: %+v", controls[0])
	}
	if controls[0].Menus != nil {
		t.Error("integer control carries a menu")
	}

	menu := controls[2]
	if len(menu.Menus) != 3 {
		t.Fatalf("menu has %d slots, want Max+1 = 3", len(menu.Menus))
	}
	if !menu.Menus[0].Present || menu.Menus[0].Name != "Disabled" {
		t.Errorf("slot 0: %+v, want present %q", menu.Menus[0], "Disabled")
	}
	if menu.Menus[1].Present {
		t.Errorf("slot 1: %+v, want absent", menu.Menus[1])
	}
	if !menu.Menus[2].Present || menu.Menus[2].Name != "60 Hz" {
		t.Errorf("slot 2: %+v, want present %q", menu.Menus[2], "60 Hz")
	}
	// Menu controls keep names only; the integer variant is cleared.
	if menu.Menus[0].Value != 0 {
		t.Errorf("menu entry kept integer value %d", menu.Menus[0].Value)
	}
}

func TestControlsIntegerMenuKeepsValues(t *testing.T) {
	fake := newFakeBackend()

	id := uint32(V4L2_CID_BASE + 5)
	fake.controls[id] = Control{
		ID:   id,
		Name: "Exposure Steps",
		Type: ControlIntegerMenu,
		Max:  1,
	}
	fake.menus[id] = map[uint32]MenuEntry{
		0: {Name: "junk", Value: 100},
		1: {Name: "junk", Value: 200},
	}

	cam := NewCamera(fake)
	controls, err := cam.Controls()
	if err != nil {
		t.Fatalf("Controls: %v", err)
	}
	if len(controls) != 1 {
		t.Fatalf("got %d controls, want 1", len(controls))
	}
	menus := controls[0].Menus
	if menus[0].Value != 100 || menus[1].Value != 200 {
		t.Errorf("integer menu values %d, %d, want 100, 200", menus[0].Value, menus[1].Value)
	}
	if menus[0].Name != "" {
		t.Errorf("integer menu kept name %q", menus[0].Name)
	}
}

func TestControlValueRoundTrip(t *testing.T) {
	fake := newFakeBackend()
	id := uint32(V4L2_CID_BASE + 0)
	fake.ctrlValues[id] = 12
	cam := NewCamera(fake)

	value, err := cam.ControlValue(id)
	if err != nil {
		t.Fatalf("ControlValue: %v", err)
	}
	if value != 12 {
		t.Errorf("value %d, want 12", value)
	}

	if err := cam.SetControlValue(id, -3); err != nil {
		t.Fatalf("SetControlValue: %v", err)
	}
	if fake.ctrlValues[id] != -3 {
		t.Errorf("backend holds %d, want -3", fake.ctrlValues[id])
	}
}

func TestControlAccessAfterClose(t *testing.T) {
	cam := NewCamera(newFakeBackend())
	cam.Close()

	if _, err := cam.Controls(); !errors.Is(err, ErrClosed) {
		t.Errorf("Controls returned %v, want %v", err, ErrClosed)
	}
	if _, err := cam.ControlValue(1); !errors.Is(err, ErrClosed) {
		t.Errorf("ControlValue returned %v, want %v", err, ErrClosed)
	}
	if err := cam.SetControlValue(1, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("SetControlValue returned %v, want %v", err, ErrClosed)
	}
}
