package file

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// FrameSink writes full frames as PNG screenshots.
type FrameSink struct {
	dir string
}

var _ driven.FrameSink = (*FrameSink)(nil)

// NewFrameSink creates the directory if needed.
func NewFrameSink(dir string) (*FrameSink, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating screenshot directory: %w", err)
	}
	return &FrameSink{dir: dir}, nil
}

// Path returns the screenshot path for mode.
func (s *FrameSink) Path(mode domain.ModeKind) string {
	return filepath.Join(s.dir, "screenshot_"+mode.String()+".png")
}

// WriteFrame encodes img and replaces the mode's screenshot.
func (s *FrameSink) WriteFrame(mode domain.ModeKind, img image.Image) error {
	return s.WriteImage("screenshot_"+mode.String(), img)
}

// WriteImage replaces <dir>/<name>.png with img.
func (s *FrameSink) WriteImage(name string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return writeFileAtomic(filepath.Join(s.dir, name+".png"), buf.Bytes(), 0644)
}
