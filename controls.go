package v4l2

import "fmt"

// ControlType classifies a device control.
type ControlType int

const (
	ControlInteger ControlType = iota
	ControlBoolean
	ControlMenu
	ControlIntegerMenu
	ControlButton
	// ControlOther covers types this package does not model further
	// (64-bit integers, strings, bitmasks, control classes).
	ControlOther
)

func (t ControlType) String() string {
	switch t {
	case ControlInteger:
		return "integer"
	case ControlBoolean:
		return "boolean"
	case ControlMenu:
		return "menu"
	case ControlIntegerMenu:
		return "integer menu"
	case ControlButton:
		return "button"
	case ControlOther:
		return "other"
	}
	return fmt.Sprintf("ControlType(%d)", int(t))
}

// ControlFlags holds the independent flag bits a device reports per control.
type ControlFlags struct {
	Disabled  bool
	Grabbed   bool
	ReadOnly  bool
	WriteOnly bool
	// Update means writing this control may change the state of others.
	Update   bool
	Inactive bool
	// Slider hints that a UI should render the control as a slider.
	Slider   bool
	Volatile bool
}

// MenuEntry is one slot of a menu control's value enumeration. Name is set
// for menu controls, Value for integer-menu controls. Present is false for
// indices within range that the device reported no entry for, which is
// common with sparse menus.
type MenuEntry struct {
	Name    string
	Value   int64
	Present bool
}

// Control is an immutable snapshot of one device-tunable parameter. The
// current value is not cached here; read and write it by ID with
// Camera.ControlValue and Camera.SetControlValue.
type Control struct {
	ID      uint32
	Name    string
	Type    ControlType
	Min     int32
	Max     int32
	Step    int32
	Default int32
	Flags   ControlFlags
	// Menus has Max+1 entries in index order for menu and integer-menu
	// controls and is nil otherwise.
	Menus []MenuEntry
}

// Controls discovers the device's user controls in id order. Ids within the
// probed range that the device does not recognize are skipped silently.
func (c *Camera) Controls() ([]Control, error) {
	if c.backend == nil {
		return nil, ErrClosed
	}

	var controls []Control
	for id := uint32(V4L2_CID_BASE); id < V4L2_CID_LASTP1; id++ {
		ctrl, err := c.backend.QueryControl(id)
		if err != nil {
			continue
		}
		if ctrl.Type == ControlMenu || ctrl.Type == ControlIntegerMenu {
			ctrl.Menus = c.queryMenus(ctrl)
		}
		controls = append(controls, ctrl)
	}
	return controls, nil
}

// queryMenus enumerates entries 0..Max inclusive, keeping the variant that
// matches the control type and marking unpopulated indices absent.
func (c *Camera) queryMenus(ctrl Control) []MenuEntry {
	menus := make([]MenuEntry, ctrl.Max+1)
	for index := range menus {
		entry, err := c.backend.QueryMenu(ctrl.ID, uint32(index))
		if err != nil {
			continue
		}
		if ctrl.Type == ControlMenu {
			entry.Value = 0
		} else {
			entry.Name = ""
		}
		entry.Present = true
		menus[index] = entry
	}
	return menus
}

// ControlValue reads the current value of the control with the given id.
func (c *Camera) ControlValue(id uint32) (int32, error) {
	if c.backend == nil {
		return 0, ErrClosed
	}
	value, err := c.backend.ControlValue(id)
	if err != nil {
		return 0, c.oserr("VIDIOC_G_CTRL", err)
	}
	return value, nil
}

// SetControlValue writes a new value to the control with the given id.
func (c *Camera) SetControlValue(id uint32, value int32) error {
	if c.backend == nil {
		return ErrClosed
	}
	if err := c.backend.SetControlValue(id, value); err != nil {
		return c.oserr("VIDIOC_S_CTRL", err)
	}
	return nil
}
