package posters

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Placeholder posters are exactly this size.
const (
	PlaceholderWidth  = 300
	PlaceholderHeight = 450
)

type channelRange struct{ min, max uint8 }

func (r channelRange) contains(v uint8) bool { return v >= r.min && v <= r.max }

// Inclusive channel ranges of the placeholder's dominant blue.
var (
	placeholderRed   = channelRange{70, 80}
	placeholderGreen = channelRange{140, 150}
	placeholderBlue  = channelRange{220, 230}
)

// PosterState classifies the poster file of a title.
type PosterState int

const (
	PosterAbsent PosterState = iota
	PosterPlaceholder
	PosterReal
	// PosterUnreadable is a file that exists but cannot be opened or decoded.
	// It is left alone.
	PosterUnreadable
)

func (s PosterState) String() string {
	switch s {
	case PosterAbsent:
		return "absent"
	case PosterPlaceholder:
		return "placeholder"
	case PosterReal:
		return "present"
	case PosterUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("PosterState(%d)", int(s))
	}
}

// Inspection describes what Inspect found at a poster path. Dominant is only
// computed for images with placeholder dimensions.
type Inspection struct {
	State    PosterState
	Format   string
	Width    int
	Height   int
	Dominant color.NRGBA
	Err      error
}

// NeedsPoster reports whether a new poster should be fetched.
func (i Inspection) NeedsPoster() bool {
	return i.State == PosterAbsent || i.State == PosterPlaceholder
}

// Inspect classifies the poster at path. Only the image header is decoded
// unless the dimensions match the placeholder.
func Inspect(path string) Inspection {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Inspection{State: PosterAbsent}
		}
		return Inspection{State: PosterUnreadable, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Inspection{State: PosterUnreadable, Err: err}
	}
	if info.IsDir() {
		return Inspection{State: PosterUnreadable, Err: fmt.Errorf("%s is a directory", path)}
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Inspection{State: PosterUnreadable, Err: fmt.Errorf("decode image header: %w", err)}
	}
	out := Inspection{State: PosterReal, Format: format, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width != PlaceholderWidth || cfg.Height != PlaceholderHeight {
		return out
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Inspection{State: PosterUnreadable, Err: err}
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return Inspection{State: PosterUnreadable, Format: format, Width: cfg.Width, Height: cfg.Height,
			Err: fmt.Errorf("decode image: %w", err)}
	}
	out.Dominant = DominantColor(img)
	if IsPlaceholder(out.Width, out.Height, out.Dominant) {
		out.State = PosterPlaceholder
	}
	return out
}

// IsPlaceholder reports whether an image of the given size and dominant color
// is the known placeholder poster.
func IsPlaceholder(width, height int, c color.NRGBA) bool {
	if width != PlaceholderWidth || height != PlaceholderHeight {
		return false
	}
	return placeholderRed.contains(c.R) && placeholderGreen.contains(c.G) && placeholderBlue.contains(c.B)
}

// DominantColor returns the most frequent exact RGB value in img. Alpha is
// ignored and reported as opaque. Ties go to the smallest packed RGB value so
// the result does not depend on iteration order.
func DominantColor(img image.Image) color.NRGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return color.NRGBA{A: 0xff}
	}

	counts := make(map[uint32]int, 256)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			counts[uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B)]++
		}
	}

	var best uint32
	bestCount := -1
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best, bestCount = key, n
		}
	}
	return color.NRGBA{R: uint8(best >> 16), G: uint8(best >> 8), B: uint8(best), A: 0xff}
}
