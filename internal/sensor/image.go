package sensor

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

const (
	frameSide = 32
	frameLen  = frameSide * frameSide
)

// Image replays a single still image as the sensor feed: the file is
// decoded once, downscaled to 32x32 and converted to grayscale.
type Image struct {
	pixels [frameLen]byte
}

func NewImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sensor image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sensor image: %w", err)
	}

	resized := resize.Resize(frameSide, frameSide, img, resize.Lanczos3)

	s := &Image{}
	bounds := resized.Bounds()
	for y := 0; y < frameSide; y++ {
		for x := 0; x < frameSide; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// ITU-R BT.601 luma, 16-bit channels down to 8 bits.
			luma := (299*r + 587*g + 114*b) / 1000
			s.pixels[y*frameSide+x] = byte(luma >> 8)
		}
	}

	return s, nil
}

func (s *Image) Capture(buf []byte) (int, error) {
	return copy(buf, s.pixels[:]), nil
}
