// Command uibridgedemo runs the bridge headless on the software host with a
// scripted UI and writes the composited desktop to a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/gpucontext"
	"golang.org/x/term"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/host/soft"
	"github.com/gogpu/uibridge/host/x11"
	"github.com/gogpu/uibridge/ui"
	"github.com/gogpu/uibridge/ui/uitest"
)

var (
	panel  = ui.Color32{R: 30, G: 34, B: 42, A: 255}
	accent = ui.Color32{R: 230, G: 80, B: 60, A: 255}
	tool   = ui.Color32{R: 60, G: 140, B: 220, A: 255}

	whiteTex = ui.TextureID{Managed: true}
	toolID   = ui.ViewportIDFrom("tool")
)

func main() {
	var (
		frames  = flag.Int("frames", 60, "number of frames to run")
		output  = flag.String("output", "uibridge.png", "output file")
		config  = flag.String("config", "", "YAML or TOML config file")
		useX11  = flag.Bool("x11", false, "read the monitor layout from the X server")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		uibridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := uibridge.DefaultConfig()
	if *config != "" {
		var err error
		if cfg, err = uibridge.LoadConfig(*config); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	hostOpts := []soft.Option{soft.WithScreens(image.Rect(0, 0, 1280, 720))}
	if *useX11 {
		d, err := x11.Connect()
		if err != nil {
			log.Fatalf("Failed to read X11 displays: %v", err)
		}
		defer d.Close()
		hostOpts = []soft.Option{soft.WithDisplayServer(d), soft.WithInputState(d)}
	}
	h := soft.New(hostOpts...)

	ctx := uitest.New()
	c, err := uibridge.New(h, ctx, cfg.Options()...)
	if err != nil {
		log.Fatalf("Failed to create bridge: %v", err)
	}
	defer c.Close()

	toolFrames := 0
	err = c.SpawnViewport(toolID,
		ui.ViewportBuilder{}.
			WithTitle("Tool").
			WithPosition(ui.Pos2{X: 900, Y: 80}).
			WithInnerSize(ui.Vec2{X: 240, Y: 160}),
		func(ui.Context) bool {
			toolFrames++
			return toolFrames < *frames/2
		})
	if err != nil {
		log.Fatalf("Failed to spawn tool viewport: %v", err)
	}

	stats := run(c, h, ctx, *frames)

	if err := writePNG(*output, h); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	stats.output = *output
	fmt.Println(stats.render(term.IsTerminal(int(os.Stdout.Fd()))))
}

type summary struct {
	frames      int
	maxViewport int
	textures    int
	items       int
	redraws     int
	output      string
}

// run ticks the bridge once per frame, feeding one scripted output and a
// pointer event per frame, and presents the host after every tick.
func run(c *uibridge.Controller, h *soft.Host, ctx *uitest.Context, frames int) summary {
	var s summary
	delta := 16 * time.Millisecond
	c.Tick(0)
	c.Tick(delta)
	for i := range frames {
		ctx.Push(script(i))
		if root, ok := h.Control("Viewport Root"); ok {
			root.Send(host.MouseMotionEvent{
				Position: host.Vector2{X: float32(100 + i*8), Y: 300},
			})
			if i == 0 {
				root.Focus()
				root.Send(host.KeyEvent{Key: gpucontext.KeySpace, Pressed: true, Text: " "})
			}
		}
		ctx.RequestRepaintOf(ui.RootViewportID)
		ctx.RequestRepaintOf(toolID)
		c.Tick(delta)
		if err := h.Present(); err != nil {
			log.Printf("Present failed: %v", err)
		}
		s.frames++
		s.maxViewport = max(s.maxViewport, len(c.Viewports()))
	}
	s.textures = c.Textures().Len()
	s.items = c.Mesh().Len()
	for _, ctrl := range h.Controls() {
		s.redraws += ctrl.Redraws()
	}
	return s
}

// script returns the UI output for frame i: a root panel, a box sliding
// across it and, while the tool viewport is open, a panel inside it.
func script(i int) ui.FullOutput {
	var out ui.FullOutput
	if i == 0 {
		out.TexturesDelta.Set = []ui.TextureSet{{
			ID:    whiteTex,
			Delta: ui.ImageDelta{Image: uitest.SolidImage(1, 1, ui.Color32{R: 255, G: 255, B: 255, A: 255})},
		}}
	}
	screen := ui.Rect{Max: ui.Pos2{X: 1280, Y: 720}}
	box := ui.RectFromMinSize(ui.Pos2{X: float32(80 + i*10), Y: 260}, ui.Vec2{X: 120, Y: 120})
	toolRect := ui.RectFromMinSize(ui.Pos2{X: 910, Y: 90}, ui.Vec2{X: 220, Y: 140})
	out.Shapes = []ui.ClippedShape{
		uitest.Shape(screen, uitest.Quad(ui.Rect{Min: ui.Pos2{X: 40, Y: 40}, Max: ui.Pos2{X: 1240, Y: 680}}, panel, whiteTex)),
		uitest.Shape(screen, uitest.Quad(box, accent, whiteTex)),
		uitest.Shape(toolRect, uitest.Quad(toolRect, tool, whiteTex)),
	}
	return out
}

func writePNG(path string, h *soft.Host) error {
	t := h.Target()
	if t == nil {
		return errors.New("no render target")
	}
	tex, ok := t.Texture().(*soft.Texture)
	if !ok {
		return fmt.Errorf("unexpected target texture %T", t.Texture())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, tex.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s summary) render(styled bool) string {
	lines := []string{
		fmt.Sprintf("frames:        %d", s.frames),
		fmt.Sprintf("max viewports: %d", s.maxViewport),
		fmt.Sprintf("textures:      %d", s.textures),
		fmt.Sprintf("canvas items:  %d", s.items),
		fmt.Sprintf("redraws:       %d", s.redraws),
		fmt.Sprintf("output:        %s", s.output),
	}
	if !styled {
		return strings.Join(lines, "\n")
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("uibridge demo")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}
