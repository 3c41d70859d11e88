// Package preview renders a skeleton to a PNG image with an orthographic
// camera. Edges are stroked as quads whose width follows the skin radius.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/Faultbox/fractree/pkg/math"
	"github.com/Faultbox/fractree/pkg/skeleton"
)

// ErrEmptySkeleton is returned when there is nothing to draw.
var ErrEmptySkeleton = errors.New("skeleton has no vertices")

// jointSides is the polygon used to round off branch joints.
const jointSides = 8

// Options control the camera and colours of a preview.
type Options struct {
	Width, Height int
	Yaw, Pitch    float32 // Degrees
	Margin        float32 // Fraction of the image left empty on each side
	MinStroke     float32 // Pixels
	Background    color.Color
	Stroke        color.Color
}

// DefaultOptions returns a three-quarter view on a light background.
func DefaultOptions() Options {
	return Options{
		Width:      1024,
		Height:     1024,
		Yaw:        30,
		Pitch:      15,
		Margin:     0.05,
		MinStroke:  1,
		Background: color.NRGBA{0xf4, 0xf1, 0xea, 0xff},
		Stroke:     color.NRGBA{0x4a, 0x35, 0x25, 0xff},
	}
}

// Camera maps world positions to pixel coordinates.
type Camera struct {
	mvp           math.Mat4
	width, height float32
	pixelsPerUnit float32
}

// NewCamera frames bounds in a width x height image. Z is up; yaw turns the
// camera around Z and pitch raises it above the XY plane.
func NewCamera(bounds skeleton.Bounds, opts Options) Camera {
	center := bounds.Center()
	extent := max(bounds.Size().Length(), 1e-3)

	yaw := math.Radians(opts.Yaw)
	pitch := math.Radians(opts.Pitch)
	dir := math.Vec3{
		X: math32.Cos(pitch) * math32.Sin(yaw),
		Y: -math32.Cos(pitch) * math32.Cos(yaw),
		Z: math32.Sin(pitch),
	}
	up := math.Vec3{Z: 1}
	if math32.Abs(dir.Z) > 0.999 {
		up = math.Vec3{Y: 1}
	}
	view := math.LookAt(center.Add(dir.Scale(extent*2)), center, up)

	// Fit the projected box of the bounds corners, keeping the aspect ratio.
	box := corners(bounds)
	first := view.TransformVec3(box[0])
	minX, maxX, minY, maxY := first.X, first.X, first.Y, first.Y
	for _, c := range box[1:] {
		p := view.TransformVec3(c)
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	w, h := float32(opts.Width), float32(opts.Height)
	spanX := max(maxX-minX, 1e-3)
	spanY := max(maxY-minY, 1e-3)
	if spanX/spanY < w/h {
		spanX = spanY * w / h
	} else {
		spanY = spanX * h / w
	}
	spanX /= 1 - 2*opts.Margin
	spanY /= 1 - 2*opts.Margin
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	proj := math.Ortho(cx-spanX/2, cx+spanX/2, cy-spanY/2, cy+spanY/2, 0, extent*4)

	return Camera{
		mvp:           proj.Mul(view),
		width:         w,
		height:        h,
		pixelsPerUnit: w / spanX,
	}
}

// Project returns the pixel position of p. Y grows downwards.
func (c Camera) Project(p math.Vec3) math.Vec2 {
	ndc := c.mvp.TransformVec3(p)
	return math.Vec2{
		X: (ndc.X + 1) / 2 * c.width,
		Y: (1 - ndc.Y) / 2 * c.height,
	}
}

// PixelsPerUnit is the scale between world units and pixels.
func (c Camera) PixelsPerUnit() float32 {
	return c.pixelsPerUnit
}

// Render draws s into a new image.
func Render(s *skeleton.Skeleton, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", opts.Width, opts.Height)
	}
	if s.VertexCount() == 0 {
		return nil, ErrEmptySkeleton
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	cam := NewCamera(s.Bounds, opts)
	screen := make([]math.Vec2, len(s.Vertices))
	for i, v := range s.Vertices {
		screen[i] = cam.Project(v)
	}
	halfWidth := func(id skeleton.VertexID) float32 {
		return max(s.Radii[id]*cam.PixelsPerUnit(), opts.MinStroke/2)
	}

	z := vector.NewRasterizer(opts.Width, opts.Height)
	z.DrawOp = draw.Over

	for _, e := range s.Edges {
		a, b := screen[e[0]], screen[e[1]]
		d := b.Sub(a)
		if d.Length() < 1e-4 {
			continue
		}
		n := d.Normalize().Perp()
		na, nb := n.Scale(halfWidth(e[0])), n.Scale(halfWidth(e[1]))
		addPolygon(z, a.Add(na), b.Add(nb), b.Sub(nb), a.Sub(na))
	}

	// Joints keep bends from showing notches where quads meet.
	if len(s.Edges) > 0 {
		for i, p := range screen {
			addJoint(z, p, halfWidth(skeleton.VertexID(i)))
		}
	}

	z.Draw(img, img.Bounds(), image.NewUniform(opts.Stroke), image.Point{})
	return img, nil
}

// WritePNG renders s and encodes it as PNG.
func WritePNG(w io.Writer, s *skeleton.Skeleton, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// addPolygon adds a closed path with positive winding. Every shape shares
// the same orientation so overlapping coverage adds up instead of cancelling.
func addPolygon(z *vector.Rasterizer, pts ...math.Vec2) {
	var area float32
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}

func addJoint(z *vector.Rasterizer, center math.Vec2, radius float32) {
	pts := make([]math.Vec2, jointSides)
	for i := range pts {
		angle := 2 * math32.Pi * float32(i) / jointSides
		pts[i] = math.Vec2{
			X: center.X + radius*math32.Cos(angle),
			Y: center.Y + radius*math32.Sin(angle),
		}
	}
	addPolygon(z, pts...)
}

func corners(b skeleton.Bounds) [8]math.Vec3 {
	var out [8]math.Vec3
	for i := range out {
		out[i] = b.Min
		if i&1 != 0 {
			out[i].X = b.Max.X
		}
		if i&2 != 0 {
			out[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			out[i].Z = b.Max.Z
		}
	}
	return out
}
