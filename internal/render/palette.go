package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme used by the chat view. Each palette names the
// glamour style that suits it so replies match the surrounding chrome.
type Palette struct {
	Name         string
	GlamourStyle string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// UserBubble and AssistantBubble fill the two sides of the conversation
	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// DefaultPalette is used when the configured name is unknown
const DefaultPalette = "tokyonight"

var palettes = map[string]Palette{
	"tokyonight": {
		Name:            "tokyonight",
		GlamourStyle:    "tokyo-night",
		Background:      lipgloss.Color("#1a1b26"),
		Surface:         lipgloss.Color("#24283b"),
		Border:          lipgloss.Color("#414868"),
		UserBubble:      lipgloss.Color("#3d59a1"),
		AssistantBubble: lipgloss.Color("#292e42"),
		Primary:         lipgloss.Color("#7aa2f7"),
		Accent:          lipgloss.Color("#bb9af7"),
		Warning:         lipgloss.Color("#e0af68"),
		Error:           lipgloss.Color("#f7768e"),
		Text:            lipgloss.Color("#c0caf5"),
		TextDim:         lipgloss.Color("#565f89"),
	},
	"catppuccin": {
		Name:            "catppuccin",
		GlamourStyle:    "dark",
		Background:      lipgloss.Color("#1e1e2e"),
		Surface:         lipgloss.Color("#313244"),
		Border:          lipgloss.Color("#45475a"),
		UserBubble:      lipgloss.Color("#585b70"),
		AssistantBubble: lipgloss.Color("#313244"),
		Primary:         lipgloss.Color("#89b4fa"),
		Accent:          lipgloss.Color("#cba6f7"),
		Warning:         lipgloss.Color("#f9e2af"),
		Error:           lipgloss.Color("#f38ba8"),
		Text:            lipgloss.Color("#cdd6f4"),
		TextDim:         lipgloss.Color("#6c7086"),
	},
	"nord": {
		Name:            "nord",
		GlamourStyle:    "dark",
		Background:      lipgloss.Color("#2e3440"),
		Surface:         lipgloss.Color("#3b4252"),
		Border:          lipgloss.Color("#4c566a"),
		UserBubble:      lipgloss.Color("#5e81ac"),
		AssistantBubble: lipgloss.Color("#3b4252"),
		Primary:         lipgloss.Color("#88c0d0"),
		Accent:          lipgloss.Color("#b48ead"),
		Warning:         lipgloss.Color("#ebcb8b"),
		Error:           lipgloss.Color("#bf616a"),
		Text:            lipgloss.Color("#eceff4"),
		TextDim:         lipgloss.Color("#7b88a1"),
	},
	"dracula": {
		Name:            "dracula",
		GlamourStyle:    "dracula",
		Background:      lipgloss.Color("#282a36"),
		Surface:         lipgloss.Color("#44475a"),
		Border:          lipgloss.Color("#6272a4"),
		UserBubble:      lipgloss.Color("#6272a4"),
		AssistantBubble: lipgloss.Color("#44475a"),
		Primary:         lipgloss.Color("#8be9fd"),
		Accent:          lipgloss.Color("#ff79c6"),
		Warning:         lipgloss.Color("#f1fa8c"),
		Error:           lipgloss.Color("#ff5555"),
		Text:            lipgloss.Color("#f8f8f2"),
		TextDim:         lipgloss.Color("#6272a4"),
	},
}

var (
	activeMu      sync.RWMutex
	activePalette = palettes[DefaultPalette]
)

// PaletteByName looks up a palette, ignoring case
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ActivePalette returns the palette the chat view draws with
func ActivePalette() Palette {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activePalette
}

// UsePalette switches the active palette. Unknown names leave it unchanged.
func UsePalette(name string) bool {
	p, ok := PaletteByName(name)
	if !ok {
		return false
	}
	activeMu.Lock()
	activePalette = p
	activeMu.Unlock()
	return true
}

// PaletteNames lists the known palettes in sorted order
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
