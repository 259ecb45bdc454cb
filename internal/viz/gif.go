package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/carnot/internal/scene"
)

var ErrNoFrames = errors.New("viz: no frames captured")

const (
	charW = 8
	charH = 16
)

func gifPalette() color.Palette {
	p := color.Palette{color.Black}
	for _, c := range []colorful.Color{
		scene.ColdAccent, scene.HotBox, scene.HotRod, scene.CylinderWall,
		scene.FlywheelRim, scene.PistonBody, scene.CrankArm, scene.LabelActive,
	} {
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p
}

// GIFRecorder turns canvas snapshots into an animated GIF.
type GIFRecorder struct {
	palette color.Palette
	frames  []*image.Paletted
	delay   int
}

// NewGIFRecorder stores frames with the given delay in hundredths of a second.
func NewGIFRecorder(delay int) *GIFRecorder {
	return &GIFRecorder{palette: gifPalette(), delay: max(1, delay)}
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

// Capture rasterises every lit braille dot as a block in its cell colour.
func (g *GIFRecorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), g.palette)
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r := c.Grid[row][col]
			if r <= blank {
				continue
			}
			pattern := int(r - blank)
			r8, g8, b8 := c.Colors[row][col].RGB255()
			idx := uint8(g.palette.Index(color.RGBA{R: r8, G: g8, B: b8, A: 255}))
			if idx == 0 {
				// never paint a lit dot in the background colour
				idx = uint8(len(g.palette) - 1)
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(col*charW+dx*dotW+px, row*charH+dy*dotH+py, idx)
						}
					}
				}
			}
		}
	}
	g.frames = append(g.frames, img)
}

func (g *GIFRecorder) Save(path string) error {
	if len(g.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
