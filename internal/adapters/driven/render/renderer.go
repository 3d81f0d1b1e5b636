package render

import (
	"fmt"
	"image"
	"math/rand/v2"
	"strings"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Renderer implements driven.Renderer.
type Renderer struct {
	wallpaperDir string
	rng          *rand.Rand
}

var _ driven.Renderer = (*Renderer)(nil)

// New creates a renderer reading wallpapers from wallpaperDir.
func New(wallpaperDir string) *Renderer {
	return &Renderer{wallpaperDir: wallpaperDir}
}

// Render draws a full frame for mode.
func (r *Renderer) Render(mode domain.DisplayMode, data domain.DataBundle, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", domain.ErrInvalidInput, width, height)
	}
	bounds := image.Rect(0, 0, width, height)

	switch m := mode.(type) {
	case domain.DashboardMode:
		return r.dashboard(bounds, data), nil
	case domain.QuoteMode, domain.PoetryMode:
		return r.content(bounds, data.Quote), nil
	case domain.WallpaperMode:
		return r.wallpaper(bounds, m.Name)
	case domain.HolidayMode:
		return r.holiday(bounds, data.Holiday), nil
	case domain.YearEndMode:
		return r.yearEnd(bounds, data), nil
	default:
		return nil, fmt.Errorf("%w: unhandled mode %T", domain.ErrInvalidInput, mode)
	}
}

// RenderStories draws a story page sized to region.
func (r *Renderer) RenderStories(page domain.StoryPage, region image.Rectangle) (image.Image, error) {
	if region.Empty() {
		return nil, fmt.Errorf("%w: empty story region", domain.ErrInvalidInput)
	}
	c := newCanvas(region)
	drawStories(c, page)
	return c.img, nil
}

func (r *Renderer) dashboard(bounds image.Rectangle, d domain.DataBundle) image.Image {
	c := newCanvas(bounds)
	w := bounds.Dx()
	y := margin + lineHeight

	c.text(margin, y, d.Date.Format("Monday, Jan 2 2006  15:04"))
	weather := fmt.Sprintf("%sC %s", d.Weather.Temp, d.Weather.Description)
	c.text(w-margin-len(weather)*face.Advance, y, weather)
	y += lineHeight / 2
	c.rule(margin, w-margin, y)
	y += lineHeight + 4

	c.text(margin, y, fmt.Sprintf("GitHub  today %d  week %d  month %d  year %d",
		d.Contributions.Day, d.Contributions.Week, d.Contributions.Month, d.Contributions.Year))
	y += lineHeight
	btc := "BTC ---"
	if d.Market.USD > 0 {
		btc = fmt.Sprintf("BTC $%.0f (%+.2f%%)", d.Market.USD, d.Market.Change24h)
	}
	c.text(margin, y, fmt.Sprintf("VPS %d%%   %s", d.VPSUsage, btc))
	y += lineHeight
	c.text(margin, y, fmt.Sprintf("Week %d%%", int(d.WeekProgress)))
	c.bar(image.Rect(margin+80, y-10, w/2-margin, y+2), d.WeekProgress)
	y += lineHeight + 4

	todo := image.Rect(bounds.Min.X, y, w/2, bounds.Max.Y)
	ty := todo.Min.Y + lineHeight
	for _, section := range []struct {
		title string
		items []string
	}{
		{"Goals", d.Todo.Goals},
		{"Must", d.Todo.Must},
		{"Optional", d.Todo.Optional},
	} {
		if ty > todo.Max.Y-lineHeight {
			break
		}
		c.text(margin, ty, section.title)
		ty += lineHeight
		for _, item := range section.items {
			if ty > todo.Max.Y-margin {
				break
			}
			c.text(margin+8, ty, "- "+truncate(item, todo.Dx()-margin*2-24))
			ty += lineHeight
		}
	}

	if d.Stories != nil {
		region := image.Rect(w/2, bounds.Dy()/2, w, bounds.Dy())
		drawStoriesAt(c, *d.Stories, region)
	}
	return c.img
}

func (r *Renderer) content(bounds image.Rectangle, q *domain.Content) image.Image {
	c := newCanvas(bounds)
	if q == nil {
		c.centered(bounds.Dy()/2, "...")
		return c.img
	}

	lines := wrap(q.Content, bounds.Dx()-margin*4)
	y := (bounds.Dy()-len(lines)*lineHeight)/2 + lineHeight/2
	for _, line := range lines {
		c.centered(y, line)
		y += lineHeight
	}

	attribution := "- " + q.Author
	if q.Source != "" {
		attribution += ", " + q.Source
	}
	c.centered(y+lineHeight, attribution)
	return c.img
}

func (r *Renderer) wallpaper(bounds image.Rectangle, name string) (image.Image, error) {
	files, err := Wallpapers(r.wallpaperDir)
	if err != nil {
		return nil, err
	}
	path := pickWallpaper(files, name, r.rng)
	if path == "" {
		return newCanvas(bounds).img, nil
	}
	return fitWallpaper(path, bounds)
}

func (r *Renderer) holiday(bounds image.Rectangle, h *domain.Holiday) image.Image {
	c := newCanvas(bounds)
	if h == nil {
		return c.img
	}
	box := bounds.Inset(margin * 3)
	c.rect(box)
	mid := bounds.Dy() / 2
	if h.Icon != "" {
		c.centered(mid-2*lineHeight, "[ "+strings.ToUpper(h.Icon)+" ]")
	}
	c.centered(mid, h.Title)
	c.centered(mid+2*lineHeight, h.Message)
	return c.img
}

func (r *Renderer) yearEnd(bounds image.Rectangle, d domain.DataBundle) image.Image {
	c := newCanvas(bounds)
	y := bounds.Dy()/3 - lineHeight
	if d.YearSummary == nil {
		c.centered(bounds.Dy()/2, "Happy New Year's Eve")
		return c.img
	}
	s := d.YearSummary
	c.centered(y, fmt.Sprintf("%d in review", s.Year))
	y += lineHeight * 2
	for _, line := range []string{
		fmt.Sprintf("%d contributions", s.Total),
		fmt.Sprintf("%d commits  %d pull requests  %d issues  %d reviews", s.Commits, s.PullRequests, s.Issues, s.Reviews),
		fmt.Sprintf("%d active days, longest streak %d", s.ActiveDays, s.LongestStreak),
	} {
		c.centered(y, line)
		y += lineHeight
	}
	if s.BusiestDay != "" {
		c.centered(y, fmt.Sprintf("busiest day %s (%d)", s.BusiestDay, s.BusiestCount))
	}
	return c.img
}

func drawStories(c *canvas, page domain.StoryPage) {
	drawStoriesAt(c, page, c.bounds())
}

// drawStoriesAt lists the page inside region, numbering stories by their
// position in the full list.
func drawStoriesAt(c *canvas, page domain.StoryPage, region image.Rectangle) {
	x := region.Min.X + margin/2
	y := region.Min.Y + lineHeight
	c.text(x, y, fmt.Sprintf("Hacker News  %d/%d", page.Page, page.TotalPages))
	y += lineHeight / 2
	c.rule(x, region.Max.X-margin/2, y)
	y += lineHeight

	width := region.Dx() - margin
	for i, s := range page.Stories {
		if y > region.Max.Y-4 {
			break
		}
		line := fmt.Sprintf("%d. %s", page.StartIndex+i+1, s.Title)
		if s.Score > 0 {
			line = fmt.Sprintf("%s (%d)", line, s.Score)
		}
		c.text(x, y, truncate(line, width))
		y += lineHeight
	}
}

// truncate shortens s with "..." so it fits width pixels.
func truncate(s string, width int) string {
	if fits(s, width) {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && !fits(string(runes)+"...", width) {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
