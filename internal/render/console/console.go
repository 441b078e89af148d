// Released under an MIT license. See LICENSE.

// Package console presents frames as styled text on a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/engine/shape"
)

// T (console) writes a description of every frame to a writer.
type T struct {
	sync.Mutex

	styled bool
	w      io.Writer

	header lipgloss.Style
	muted  lipgloss.Style
}

// New creates a console sink writing to w. Styling is only applied when
// styled is true, which callers decide with go-isatty.
func New(w io.Writer, styled bool) *T {
	return &T{
		styled: styled,
		w:      w,
		header: lipgloss.NewStyle().Bold(true),
		muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Present writes the snapshot s.
func (c *T) Present(ctx context.Context, s scene.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.Lock()
	defer c.Unlock()

	_, err := io.WriteString(c.w, c.Render(s))

	return err
}

// Render returns the text written for the snapshot s.
func (c *T) Render(s scene.Snapshot) string {
	var b strings.Builder

	bg := "none"
	if s.Background != "" {
		bg = c.color(s.Background)
	}

	b.WriteString(c.style(c.header, fmt.Sprintf("frame %d", s.Frame)))
	b.WriteString(fmt.Sprintf(" %sx%s background %s\n", num(s.Width), num(s.Height), bg))

	for i, sh := range s.Shapes {
		b.WriteString(fmt.Sprintf("  %d. %s", i+1, c.describe(sh)))
		b.WriteString("\n")
	}

	return b.String()
}

func (c *T) color(v shape.Color) string {
	if !c.styled || !strings.HasPrefix(string(v), "#") {
		return string(v)
	}

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(string(v))).Render("■")

	return swatch + " " + string(v)
}

func (c *T) describe(s shape.T) string {
	parts := []string{
		s.Kind.String(),
		s.Width.String() + "x" + s.Height.String(),
		"at (" + s.Position.X.String() + ", " + s.Position.Y.String() + ")",
	}

	if s.Rotation != 0 {
		parts = append(parts, "rotated "+num(s.Rotation))
	}

	switch {
	case !s.FillEnabled:
		parts = append(parts, "no fill")
	case s.FillColor != "":
		parts = append(parts, "fill "+c.color(s.FillColor))
	}

	if s.StrokeColor != "" {
		parts = append(parts, "stroke "+c.color(s.StrokeColor))
	}

	if s.LineWidth != shape.DefaultLineWidth {
		parts = append(parts, "line "+num(s.LineWidth))
	}

	text := strings.Join(parts, " ")
	if !s.Visible {
		text = c.style(c.muted, text+" (hidden)")
	}

	return text
}

func (c *T) style(st lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}

	return st.Render(text)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
