// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// ViewportBuilder is the desired configuration of a viewport's window.
// Nil fields are left to the host's defaults.
type ViewportBuilder struct {
	Title        *string
	Position     *Pos2
	InnerSize    *Vec2
	MinInnerSize *Vec2
	MaxInnerSize *Vec2

	Decorations *bool
	Transparent *bool
	Resizable   *bool
	Visible     *bool
	Maximized   *bool
	Minimized   *bool
	Fullscreen  *bool
	AlwaysOnTop *bool
	Passthrough *bool
}

// WithTitle returns a copy of b with the title set.
func (b ViewportBuilder) WithTitle(title string) ViewportBuilder {
	b.Title = &title
	return b
}

// WithPosition returns a copy of b with the outer position set.
func (b ViewportBuilder) WithPosition(pos Pos2) ViewportBuilder {
	b.Position = &pos
	return b
}

// WithInnerSize returns a copy of b with the drawable size set.
func (b ViewportBuilder) WithInnerSize(size Vec2) ViewportBuilder {
	b.InnerSize = &size
	return b
}

// WithDecorations returns a copy of b with the window frame toggled.
func (b ViewportBuilder) WithDecorations(on bool) ViewportBuilder {
	b.Decorations = &on
	return b
}

// WithTransparent returns a copy of b with background transparency toggled.
func (b ViewportBuilder) WithTransparent(on bool) ViewportBuilder {
	b.Transparent = &on
	return b
}

// WithResizable returns a copy of b with user resizing toggled.
func (b ViewportBuilder) WithResizable(on bool) ViewportBuilder {
	b.Resizable = &on
	return b
}

// WithVisible returns a copy of b with visibility toggled.
func (b ViewportBuilder) WithVisible(on bool) ViewportBuilder {
	b.Visible = &on
	return b
}

// WithAlwaysOnTop returns a copy of b with the window level set.
func (b ViewportBuilder) WithAlwaysOnTop(on bool) ViewportBuilder {
	b.AlwaysOnTop = &on
	return b
}

// Patch updates b towards next and returns the window commands that realize
// the change in place. When a change cannot be applied to an existing
// window, recreate is true and the caller must rebuild the window from b.
//
// Only fields set in next are considered; b keeps its value for the rest.
func (b *ViewportBuilder) Patch(next ViewportBuilder) (commands []ViewportCommand, recreate bool) {
	if changed(&b.Title, next.Title) {
		commands = append(commands, CommandTitle{Title: *b.Title})
	}
	if changed(&b.Position, next.Position) {
		commands = append(commands, CommandOuterPosition{Pos: *b.Position})
	}
	if changed(&b.InnerSize, next.InnerSize) {
		commands = append(commands, CommandInnerSize{Size: *b.InnerSize})
	}
	if changed(&b.MinInnerSize, next.MinInnerSize) {
		commands = append(commands, CommandMinInnerSize{Size: *b.MinInnerSize})
	}
	if changed(&b.MaxInnerSize, next.MaxInnerSize) {
		commands = append(commands, CommandMaxInnerSize{Size: *b.MaxInnerSize})
	}
	if changed(&b.Resizable, next.Resizable) {
		commands = append(commands, CommandResizable{Resizable: *b.Resizable})
	}
	if changed(&b.Visible, next.Visible) {
		commands = append(commands, CommandVisible{Visible: *b.Visible})
	}
	if changed(&b.Maximized, next.Maximized) {
		commands = append(commands, CommandMaximized{Maximized: *b.Maximized})
	}
	if changed(&b.Minimized, next.Minimized) {
		commands = append(commands, CommandMinimized{Minimized: *b.Minimized})
	}
	if changed(&b.Fullscreen, next.Fullscreen) {
		commands = append(commands, CommandFullscreen{Fullscreen: *b.Fullscreen})
	}
	if changed(&b.AlwaysOnTop, next.AlwaysOnTop) {
		commands = append(commands, CommandWindowLevel{AlwaysOnTop: *b.AlwaysOnTop})
	}
	if changed(&b.Passthrough, next.Passthrough) {
		commands = append(commands, CommandMousePassthrough{Passthrough: *b.Passthrough})
	}

	// Window frame and surface alpha are fixed at window creation.
	if changed(&b.Decorations, next.Decorations) {
		recreate = true
	}
	if changed(&b.Transparent, next.Transparent) {
		recreate = true
	}
	return commands, recreate
}

// InitialCommands returns the commands that bring a freshly created window
// to the configuration described by b.
func (b ViewportBuilder) InitialCommands() []ViewportCommand {
	var empty ViewportBuilder
	commands, _ := empty.Patch(b)
	return commands
}

// changed stores next into *cur when it is set and differs.
func changed[T comparable](cur **T, next *T) bool {
	if next == nil {
		return false
	}
	if *cur != nil && **cur == *next {
		return false
	}
	v := *next
	*cur = &v
	return true
}
