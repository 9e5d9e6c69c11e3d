package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/tiltball/internal/tilt"
)

const (
	width       = 70
	height      = 20
	trailLength = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws plain ANSI frames of the ball as a session steps. It
// needs no terminal raw mode, so it works for piped replays too.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
	frames    int
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, trailLength),
	}
}

// OnStep renders at most frameRate frames per second; a zero frame rate
// renders every step.
func (r *LiveRenderer) OnStep(s tilt.State, step int) {
	if r.frameRate > 0 {
		elapsed := time.Since(r.lastFrame)
		if elapsed < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.clear()
	r.drawWalls()
	r.drawBall(s.Position)
	r.render(s, step)
	r.frames++
}

func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) drawWalls() {
	for x := 0; x < width; x++ {
		r.set(x, 0, '-')
		r.set(x, height-1, '-')
	}
	for y := 0; y < height; y++ {
		r.set(0, y, '|')
		r.set(width-1, y, '|')
	}
}

// cell maps percentage coordinates inside the walls.
func cell(p tilt.Coordinate) (int, int) {
	x := 1 + int(p.X/100*float64(width-3))
	y := 1 + int(p.Y/100*float64(height-3))
	return x, y
}

func (r *LiveRenderer) drawBall(p tilt.Coordinate) {
	bx, by := cell(p)

	r.trail = append(r.trail, struct{ x, y int }{bx, by})
	if len(r.trail) > trailLength {
		r.trail = r.trail[1:]
	}

	for i, pt := range r.trail {
		if i < len(r.trail)/2 {
			r.set(pt.x, pt.y, '.')
		} else {
			r.set(pt.x, pt.y, 'o')
		}
	}
	r.set(bx, by, 'O')
}

func (r *LiveRenderer) render(s tilt.State, step int) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  step=%d\n", r.title, step))

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("  x=%.2f y=%.2f vx=%.2f vy=%.2f\n",
		s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
