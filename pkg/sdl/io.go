package sdl

import (
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/mnafees/c8vm/emulator"
	"github.com/mnafees/c8vm/internal"
)

const (
	screenColor = 0x1A237E
	soundColor  = 0x311B92 // background while the sound timer is running
	spriteColor = 0x9FA8DA
)

// IO is the SDL input/output frontend for the VM
type IO struct {
	window    *sdl.Window
	surface   *sdl.Surface
	pixelSize int32
}

var _ emulator.Frontend = (*IO)(nil)

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(pixelSize int) *IO {
	return &IO{
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return errors.Wrap(err, "initialising SDL")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return errors.Wrap(err, "creating window")
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return errors.Wrap(err, "getting window surface")
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		io.Destroy()
		return errors.Wrap(err, "clearing window surface")
	}
	return errors.Wrap(io.window.UpdateSurface(), "updating window surface")
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		io.window.Destroy()
		io.window = nil
	}
	sdl.Quit()
}

// PollEvents forwards keyboard events to the keypad and reports a quit request
func (io *IO) PollEvents(keypad emulator.Keypad) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			code := keymap(t.Keysym.Scancode)
			if code == -1 {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				keypad.KeyDown(uint8(code))
			case sdl.KEYUP:
				keypad.KeyUp(uint8(code))
			}
		case *sdl.QuitEvent:
			quit = true
		}
	}
	return quit
}

// Render draws the current frame buffer on screen
func (io *IO) Render(display internal.Display, soundActive bool) {
	background := uint32(screenColor)
	if soundActive {
		background = soundColor
	}
	_ = io.surface.FillRect(nil, background)
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if display[h][w] == 1 {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				_ = io.surface.FillRect(rect, spriteColor)
			}
		}
	}
	_ = io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}
