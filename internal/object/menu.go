package object

import "github.com/tomz197/invaders/internal/draw"

// MenuOption is an entry of the start menu.
type MenuOption int

const (
	OptionNewGame MenuOption = iota // Start playing
	OptionExit                      // Leave the program
)

// String returns the label shown in the menu.
func (o MenuOption) String() string {
	switch o {
	case OptionNewGame:
		return "New game"
	case OptionExit:
		return "Exit"
	default:
		return "?"
	}
}

// SelectorSymbol marks the highlighted menu entry.
const SelectorSymbol = '>'

// menuHelp is drawn under the options when the grid is tall enough.
var menuHelp = []string{
	"Arrows/AD move, SPACE fire",
	"ESC/Q back to menu",
}

// Menu is the start screen: a list of options and a clamped selection.
type Menu struct {
	Options   []MenuOption
	selection int
}

// NewMenu creates the start menu with "New game" selected.
func NewMenu() *Menu {
	return &Menu{Options: []MenuOption{OptionNewGame, OptionExit}}
}

// ChangeOption moves the selection up or down by one, without wrapping.
func (m *Menu) ChangeOption(upwards bool) {
	if upwards && m.selection > 0 {
		m.selection--
	} else if !upwards && m.selection < len(m.Options)-1 {
		m.selection++
	}
}

// Selection returns the index of the highlighted option.
func (m *Menu) Selection() int { return m.selection }

// Selected returns the highlighted option.
func (m *Menu) Selected() MenuOption { return m.Options[m.selection] }

// Draw writes the selector and option labels from the top-left corner,
// followed by the controls help.
func (m *Menu) Draw(f *draw.Frame) {
	f.Set(0, m.selection, SelectorSymbol)
	for row, option := range m.Options {
		f.WriteString(1, row, option.String())
	}

	row := len(m.Options) + 1
	for _, line := range menuHelp {
		if row >= f.Rows() || len(line) >= f.Cols() {
			break
		}
		f.WriteString(1, row, line)
		row++
	}
}
