package render

import (
	"os"

	"github.com/diogo/chatboot/internal/config"
)

// OptionsFromConfig derives render options from the user configuration.
// GLAMOUR_STYLE wins over the configured style. When the markdown style is
// left at its default, the palette's matching glamour style is used.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	md := cfg.Markdown
	opts.Style = md.Style
	if md.Style == "" || md.Style == config.DefaultMarkdownConfig().Style {
		if p, ok := PaletteByName(cfg.TUITheme); ok {
			opts.Style = p.GlamourStyle
		} else {
			opts.Style = DefaultOptions().Style
		}
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}
