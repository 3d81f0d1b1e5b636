// Package display provides panel drivers.
//
// Mock stands in for an e-paper panel: it keeps the panel contents in
// memory, enforces the init-before-draw discipline of real hardware and can
// mirror every update to a PNG so the panel can be watched from another
// machine.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// ErrAsleep is returned when drawing on a panel that was put to sleep
// without a following Init.
var ErrAsleep = errors.New("display: panel is asleep")

// ImageWriter persists named images.
type ImageWriter interface {
	WriteImage(name string, img image.Image) error
}

// Stats counts driver calls.
type Stats struct {
	Inits    int
	Clears   int
	Frames   int
	Partials int
	Sleeps   int
}

// Mock is an in-memory panel.
type Mock struct {
	mu     sync.Mutex
	panel  *image.Gray
	awake  bool
	stats  Stats
	mirror ImageWriter
	logger *slog.Logger
}

var _ driven.Display = (*Mock)(nil)

// NewMock creates a width x height panel. mirror may be nil.
func NewMock(width, height int, mirror ImageWriter, logger *slog.Logger) *Mock {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mock{
		panel:  image.NewGray(image.Rect(0, 0, width, height)),
		mirror: mirror,
		logger: logger.With("component", "display"),
	}
	m.fill()
	return m
}

// Init wakes the panel.
func (m *Mock) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awake = true
	m.stats.Inits++
	m.logger.Debug("panel init")
	return nil
}

// Clear blanks the panel.
func (m *Mock) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.awake {
		return ErrAsleep
	}
	m.fill()
	m.stats.Clears++
	m.logger.Debug("panel clear")
	return m.flush()
}

// Show draws a full frame.
func (m *Mock) Show(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.awake {
		return ErrAsleep
	}
	if img == nil {
		return fmt.Errorf("%w: nil frame", domain.ErrInvalidInput)
	}
	draw.Draw(m.panel, m.panel.Bounds(), img, img.Bounds().Min, draw.Src)
	m.stats.Frames++
	m.logger.Debug("panel full refresh", "frame", m.stats.Frames)
	return m.flush()
}

// ShowPartial redraws region from img. img's bounds are in panel
// coordinates and must cover region.
func (m *Mock) ShowPartial(img image.Image, region image.Rectangle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.awake {
		return ErrAsleep
	}
	if img == nil || !region.In(img.Bounds()) {
		return fmt.Errorf("%w: partial image does not cover %v", domain.ErrInvalidInput, region)
	}
	if !region.In(m.panel.Bounds()) {
		return fmt.Errorf("%w: region %v outside panel", domain.ErrInvalidInput, region)
	}
	draw.Draw(m.panel, region, img, region.Min, draw.Src)
	m.stats.Partials++
	m.logger.Debug("panel partial refresh", "region", region.String())
	return m.flush()
}

// Sleep puts the panel to sleep. Drawing requires a new Init.
func (m *Mock) Sleep() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.awake = false
	m.stats.Sleeps++
	m.logger.Debug("panel sleep")
	return nil
}

// Snapshot returns a copy of the panel contents.
func (m *Mock) Snapshot() *image.Gray {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := image.NewGray(m.panel.Bounds())
	copy(cp.Pix, m.panel.Pix)
	return cp
}

// Stats returns the call counters.
func (m *Mock) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func (m *Mock) fill() {
	for i := range m.panel.Pix {
		m.panel.Pix[i] = 0xff
	}
}

// flush mirrors the panel. Mirror failures are logged, the panel itself
// was updated.
func (m *Mock) flush() error {
	if m.mirror == nil {
		return nil
	}
	if err := m.mirror.WriteImage("panel", m.panel); err != nil {
		m.logger.Warn("mirroring panel failed", "error", err)
	}
	return nil
}
