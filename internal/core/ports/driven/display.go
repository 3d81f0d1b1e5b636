package driven

import (
	"image"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// Display drives the physical panel. Every call is a blocking hardware
// operation; callers serialise access themselves.
type Display interface {
	// Init wakes the panel and prepares it for a full refresh.
	Init() error

	// Clear blanks the whole panel.
	Clear() error

	// Show draws a full frame.
	Show(img image.Image) error

	// ShowPartial redraws only region with img.
	// img must cover at least region's size.
	ShowPartial(img image.Image, region image.Rectangle) error

	// Sleep puts the panel into its low-power state.
	Sleep() error
}

// Renderer lays out a data bundle into a frame.
type Renderer interface {
	// Render draws a full frame for mode.
	Render(mode domain.DisplayMode, data domain.DataBundle, width, height int) (image.Image, error)

	// RenderStories draws a story page sized to region.
	RenderStories(page domain.StoryPage, region image.Rectangle) (image.Image, error)
}

// FrameSink receives a copy of every full frame when screenshot mode is on.
type FrameSink interface {
	// WriteFrame stores img under a name derived from mode.
	WriteFrame(mode domain.ModeKind, img image.Image) error
}
