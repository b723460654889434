package render

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	ApproxColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	ExactColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Frame is one picture: an approximate and an exact curve over the same nodes.
type Frame struct {
	Title         string
	X             []float64
	Approx, Exact []float64
	// YMin, YMax fix the vertical range when YMax > YMin.
	YMin, YMax float64
}

func xys(x, y []float64) (pts plotter.XYs, err error) {
	if len(x) != len(y) {
		err = fmt.Errorf("curve has %d abscissae and %d ordinates", len(x), len(y))
		return
	}
	pts = make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return
}

func (f Frame) Plot() (p *plot.Plot, err error) {
	var (
		approx, exact plotter.XYs
		la, le        *plotter.Line
	)
	if approx, err = xys(f.X, f.Approx); err != nil {
		return
	}
	if exact, err = xys(f.X, f.Exact); err != nil {
		return
	}
	p = plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "u"
	if la, err = plotter.NewLine(approx); err != nil {
		return
	}
	la.Color = ApproxColor
	la.Width = vg.Points(1.5)
	if le, err = plotter.NewLine(exact); err != nil {
		return
	}
	le.Color = ExactColor
	le.Width = vg.Points(1.5)
	p.Add(plotter.NewGrid(), la, le)
	// Add widens the axes to the data, a fixed range has to come after it
	if f.YMax > f.YMin {
		p.Y.Min, p.Y.Max = f.YMin, f.YMax
	}
	p.Legend.Add("approx", la)
	p.Legend.Add("exact", le)
	p.Legend.Top = true
	return
}

// Options sets the picture size and the GIF frame delay.
type Options struct {
	Width, Height vg.Length
	// Delay between GIF frames in 100ths of a second.
	Delay int
}

func DefaultOptions() Options {
	return Options{Width: 6.4 * vg.Inch, Height: 4.8 * vg.Inch, Delay: 10}
}

// LinePlot writes a single frame as a PNG file.
func LinePlot(fileName string, f Frame, opt Options) (err error) {
	var (
		p *plot.Plot
	)
	if p, err = f.Plot(); err != nil {
		return
	}
	if err = p.Save(opt.Width, opt.Height, fileName); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": fileName}).Info("Generated plot")
	return
}

func rasterize(f Frame, opt Options) (img *image.Paletted, err error) {
	var (
		p *plot.Plot
	)
	if p, err = f.Plot(); err != nil {
		return
	}
	c := vgimg.New(opt.Width, opt.Height)
	p.Draw(draw.New(c))
	src := c.Image()
	img = image.NewPaletted(src.Bounds(), palette.Plan9)
	imagedraw.Draw(img, img.Rect, src, src.Bounds().Min, imagedraw.Src)
	return
}

// EncodeAnimation writes the frames as an animated GIF.
func EncodeAnimation(w io.Writer, frames []Frame, opt Options) (err error) {
	var (
		anim = &gif.GIF{}
		img  *image.Paletted
	)
	if len(frames) == 0 {
		return fmt.Errorf("animation needs at least one frame")
	}
	for i, f := range frames {
		if img, err = rasterize(f, opt); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opt.Delay)
		log.WithFields(log.Fields{"frame": i}).Debug("Rasterized frame")
	}
	return gif.EncodeAll(w, anim)
}

// Animation writes the frames to fileName as an animated GIF.
func Animation(fileName string, frames []Frame, opt Options) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	if err = EncodeAnimation(file, frames, opt); err != nil {
		file.Close()
		return
	}
	if err = file.Close(); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": fileName, "frames": len(frames)}).Info("Generated GIF")
	return
}
