// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package x11 reads display geometry and modifier state from an X server.
//
// Displays implements host.DisplayServer from the active XRandR CRTCs and
// host.InputState from the core pointer's modifier mask, so a software or
// custom host can report the real desktop layout:
//
//	d, err := x11.Connect()
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//	h := soft.New(soft.WithDisplayServer(d), soft.WithInputState(d))
package x11

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
)

// ErrNoMonitors is returned when the server reports no active CRTC.
var ErrNoMonitors = errors.New("x11: no active monitors")

// Monitor is one active CRTC.
type Monitor struct {
	Name    string
	Bounds  image.Rectangle
	Primary bool
}

// Displays is an XRandR-backed display list.
type Displays struct {
	xu   *xgbutil.XUtil
	root xproto.Window

	mu       sync.Mutex
	monitors []Monitor
}

var (
	_ host.DisplayServer = (*Displays)(nil)
	_ host.InputState    = (*Displays)(nil)
)

// Connect opens the display named by $DISPLAY and reads its monitors.
func Connect() (*Displays, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11: randr init failed: %w", err)
	}
	d := &Displays{xu: xu, root: xu.RootWin()}
	if err := d.Refresh(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Close disconnects from the server.
func (d *Displays) Close() {
	d.xu.Conn().Close()
}

// Refresh re-reads the monitor layout. Call it after a RandR screen change.
func (d *Displays) Refresh() error {
	conn := d.xu.Conn()
	res, err := randr.GetScreenResources(conn, d.root).Reply()
	if err != nil {
		return fmt.Errorf("x11: get screen resources: %w", err)
	}

	var primary randr.Output
	if p, err := randr.GetOutputPrimary(conn, d.root).Reply(); err == nil {
		primary = p.Output
	}

	var monitors []Monitor
	for i, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			uibridge.Logger().Debug("x11: crtc info failed", "crtc", crtc, "err", err)
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], res.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		monitors = append(monitors, Monitor{
			Name:    name,
			Bounds:  image.Rect(int(info.X), int(info.Y), int(info.X)+int(info.Width), int(info.Y)+int(info.Height)),
			Primary: slices.Contains(info.Outputs, primary),
		})
	}
	if len(monitors) == 0 {
		return ErrNoMonitors
	}
	sortMonitors(monitors)

	d.mu.Lock()
	d.monitors = monitors
	d.mu.Unlock()
	uibridge.Logger().Debug("x11: monitors", "count", len(monitors))
	return nil
}

// sortMonitors puts the primary monitor first and orders the rest top to
// bottom, then left to right.
func sortMonitors(m []Monitor) {
	slices.SortStableFunc(m, func(a, b Monitor) int {
		if a.Primary != b.Primary {
			if a.Primary {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(a.Bounds.Min.Y, b.Bounds.Min.Y), cmp.Compare(a.Bounds.Min.X, b.Bounds.Min.X))
	})
}

// Monitors returns the monitors read by the last Refresh.
func (d *Displays) Monitors() []Monitor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.monitors)
}

func (d *Displays) monitor(i int) Monitor {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.monitors) {
		return Monitor{}
	}
	return d.monitors[i]
}

// ScreenCount implements host.DisplayServer.
func (d *Displays) ScreenCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.monitors)
}

// ScreenPosition implements host.DisplayServer.
func (d *Displays) ScreenPosition(i int) image.Point { return d.monitor(i).Bounds.Min }

// ScreenSize implements host.DisplayServer.
func (d *Displays) ScreenSize(i int) image.Point { return d.monitor(i).Bounds.Size() }

// Modifiers implements host.InputState by querying the pointer's modifier
// mask. Errors report no modifiers.
func (d *Displays) Modifiers() gpucontext.Modifiers {
	reply, err := xproto.QueryPointer(d.xu.Conn(), d.root).Reply()
	if err != nil {
		uibridge.Logger().Debug("x11: query pointer failed", "err", err)
		return 0
	}
	return modifiers(reply.Mask)
}

func modifiers(mask uint16) gpucontext.Modifiers {
	var m gpucontext.Modifiers
	if mask&xproto.KeyButMaskShift != 0 {
		m |= gpucontext.ModShift
	}
	if mask&xproto.KeyButMaskControl != 0 {
		m |= gpucontext.ModControl
	}
	if mask&xproto.KeyButMaskMod1 != 0 {
		m |= gpucontext.ModAlt
	}
	if mask&xproto.KeyButMaskMod4 != 0 {
		m |= gpucontext.ModSuper
	}
	return m
}
