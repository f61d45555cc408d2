package game

import (
	"github.com/golang/geo/r2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Command is a user request applied between frames
type Command int

const (
	CommandSpeedUp Command = iota
	CommandSlowDown
	CommandReset
	CommandToggleDebug
	CommandQuit
)

// Button is a clickable on-screen control bound to a command
type Button struct {
	Label   string
	Rect    r2.Rect
	Command Command
}

// Button layout constants
const (
	buttonWidth   = 110.0
	buttonHeight  = 28.0
	buttonPadding = 12.0
)

// DefaultButtons lays out the speed controls along the bottom of the screen
func DefaultButtons(screenHeight float64) []Button {
	y := screenHeight - buttonPadding - buttonHeight
	newRect := func(x float64) r2.Rect {
		return r2.RectFromPoints(
			r2.Point{X: x, Y: y},
			r2.Point{X: x + buttonWidth, Y: y + buttonHeight},
		)
	}

	return []Button{
		{Label: "Speed Up", Rect: newRect(buttonPadding), Command: CommandSpeedUp},
		{Label: "Slow Down", Rect: newRect(2*buttonPadding + buttonWidth), Command: CommandSlowDown},
	}
}

// ButtonAt returns the button under the screen point, if any
func ButtonAt(buttons []Button, p r2.Point) (Button, bool) {
	for _, b := range buttons {
		if b.Rect.ContainsPoint(p) {
			return b, true
		}
	}
	return Button{}, false
}

// InputProvider yields the commands issued since the previous frame
type InputProvider interface {
	Poll(buttons []Button) []Command
}

// PlayerInput reads commands from the keyboard, mouse and touch screen
type PlayerInput struct {
	commands []Command
	touchIDs []ebiten.TouchID
}

// NewPlayerInput creates a new player input provider
func NewPlayerInput() *PlayerInput {
	return &PlayerInput{
		commands: make([]Command, 0, 4),
		touchIDs: make([]ebiten.TouchID, 0, 4),
	}
}

// keyBindings maps keys to the command each one issues
var keyBindings = []struct {
	key     ebiten.Key
	command Command
}{
	{ebiten.KeyArrowUp, CommandSpeedUp},
	{ebiten.KeyEqual, CommandSpeedUp},
	{ebiten.KeyArrowDown, CommandSlowDown},
	{ebiten.KeyMinus, CommandSlowDown},
	{ebiten.KeyR, CommandReset},
	{ebiten.KeyF1, CommandToggleDebug},
	{ebiten.KeyEscape, CommandQuit},
}

// Poll returns this frame's commands. The returned slice is reused on the
// next call.
func (p *PlayerInput) Poll(buttons []Button) []Command {
	p.commands = p.commands[:0]

	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			p.commands = append(p.commands, binding.command)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		p.press(buttons, mx, my)
	}

	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		p.press(buttons, tx, ty)
	}

	return p.commands
}

func (p *PlayerInput) press(buttons []Button, x, y int) {
	if b, ok := ButtonAt(buttons, r2.Point{X: float64(x), Y: float64(y)}); ok {
		p.commands = append(p.commands, b.Command)
	}
}
