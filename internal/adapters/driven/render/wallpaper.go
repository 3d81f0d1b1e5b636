package render

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF wallpapers
	_ "image/jpeg" // JPEG wallpapers
	_ "image/png"  // PNG wallpapers
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp" // BMP wallpapers
	xdraw "golang.org/x/image/draw"
)

var wallpaperExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".gif": true,
}

// Wallpapers lists image files in dir, sorted. A missing dir is empty.
func Wallpapers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading wallpaper directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !wallpaperExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// pickWallpaper returns the file whose stem is name, or a random file when
// name is empty or unknown. It returns "" for an empty directory.
func pickWallpaper(files []string, name string, rng *rand.Rand) string {
	if len(files) == 0 {
		return ""
	}
	if name != "" {
		for _, f := range files {
			stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
			if strings.EqualFold(stem, name) {
				return f
			}
		}
	}
	if rng == nil {
		return files[rand.IntN(len(files))]
	}
	return files[rng.IntN(len(files))]
}

// fitWallpaper decodes path and scales it to fit bounds, centered on white.
func fitWallpaper(path string, bounds image.Rectangle) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wallpaper: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding wallpaper %s: %w", filepath.Base(path), err)
	}

	c := newCanvas(bounds)
	sb := src.Bounds()
	if sb.Empty() {
		return c.img, nil
	}

	scale := min(float64(bounds.Dx())/float64(sb.Dx()), float64(bounds.Dy())/float64(sb.Dy()))
	w := max(1, int(float64(sb.Dx())*scale))
	h := max(1, int(float64(sb.Dy())*scale))
	x := bounds.Min.X + (bounds.Dx()-w)/2
	y := bounds.Min.Y + (bounds.Dy()-h)/2

	xdraw.CatmullRom.Scale(c.img, image.Rect(x, y, x+w, y+h), src, sb, xdraw.Over, nil)
	return c.img, nil
}
