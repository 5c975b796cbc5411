package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/jpegify/internal/entity"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPasses       = 2
	DefaultMinQuality   = 10
	DefaultMaxQuality   = 30
	DefaultFinalQuality = 25
	DefaultHueShift     = 180.0
	// 4096x4096; intermediate images may be four times as large
	DefaultMaxPixels = 1 << 24
)

// ImageProcessor degrades an encoded image into a JPEG of the same size.
type ImageProcessor interface {
	Distort(ctx context.Context, data []byte) ([]byte, error)
}

// Params bounds the randomized parameters of a distortion run.
type Params struct {
	Passes       int
	MinQuality   int
	MaxQuality   int
	FinalQuality int
	HueShift     float64
}

func DefaultParams() Params {
	return Params{
		Passes:       DefaultPasses,
		MinQuality:   DefaultMinQuality,
		MaxQuality:   DefaultMaxQuality,
		FinalQuality: DefaultFinalQuality,
		HueShift:     DefaultHueShift,
	}
}

type Option func(*imageProcessor)

// WithParams overrides the default distortion bounds.
func WithParams(p Params) Option {
	return func(ip *imageProcessor) { ip.params = p }
}

// WithMaxPixels caps the declared width*height an input may have.
func WithMaxPixels(n int64) Option {
	return func(ip *imageProcessor) { ip.maxPixels = n }
}

// WithSeed makes every run draw the same parameters, for replaying a result.
func WithSeed(seed uint64) Option {
	return func(ip *imageProcessor) {
		ip.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

type imageProcessor struct {
	params    Params
	maxPixels int64
	newRand   func() *rand.Rand
}

func NewImageProcessor(opts ...Option) ImageProcessor {
	p := &imageProcessor{
		params:    DefaultParams(),
		maxPixels: DefaultMaxPixels,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// plan holds the parameters drawn for a single run.
type plan struct {
	width, height int
	qualities     []int
}

func (p *imageProcessor) Distort(ctx context.Context, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", entity.ErrDecode, entity.ErrEmptyUpload)
	}

	// header only, so oversized images are refused before any pixel buffer exists
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxPixels {
		return nil, fmt.Errorf("%w: %w: %dx%d exceeds %d pixels",
			entity.ErrDecode, entity.ErrImageTooLarge, cfg.Width, cfg.Height, p.maxPixels)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	bounds := src.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", entity.ErrDecode, origW, origH)
	}

	pl := p.draw(p.newRand(), origW, origH)

	logrus.WithFields(logrus.Fields{
		"width":        origW,
		"height":       origH,
		"intermediate": fmt.Sprintf("%dx%d", pl.width, pl.height),
		"qualities":    pl.qualities,
	}).Debug("Distorting image")

	var img image.Image = src
	for i, quality := range pl.qualities {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: pass %d: %w", entity.ErrTransform, i+1, err)
		}
		img, err = p.pass(img, pl.width, pl.height, origW, origH, quality)
		if err != nil {
			return nil, fmt.Errorf("%w: pass %d: %v", entity.ErrTransform, i+1, err)
		}
	}

	out, err := encodeJPEG(img, p.params.FinalQuality)
	if err != nil {
		return nil, fmt.Errorf("%w: final encode: %v", entity.ErrTransform, err)
	}
	return out, nil
}

// draw picks the intermediate size and per-pass qualities. Bounds are inclusive.
func (p *imageProcessor) draw(rng *rand.Rand, w, h int) plan {
	pl := plan{
		width:     between(rng, max(1, w/2), w*2),
		height:    between(rng, max(1, h/2), h*2),
		qualities: make([]int, p.params.Passes),
	}
	for i := range pl.qualities {
		pl.qualities[i] = between(rng, p.params.MinQuality, p.params.MaxQuality)
	}
	return pl
}

// pass stretches img to the intermediate size, turns it upside down, shifts
// its hue, round-trips it through a low quality JPEG and stretches it back.
func (p *imageProcessor) pass(img image.Image, w, h, origW, origH, quality int) (image.Image, error) {
	stretched := imaging.Resize(img, w, h, imaging.NearestNeighbor)
	rotated := imaging.Rotate180(stretched)
	shifted := ShiftHue(rotated, p.params.HueShift)

	encoded, err := encodeJPEG(shifted, quality)
	if err != nil {
		return nil, fmt.Errorf("encode at quality %d: %w", quality, err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode intermediate: %w", err)
	}

	return imaging.Resize(decoded, origW, origH, imaging.NearestNeighbor), nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
