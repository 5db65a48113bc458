package dataset

import (
	"fmt"
	"image"
	"math"
	"os"

	// Decoders for every format the dataset mixes. Registration only.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// measureFile opens, decodes, and measures a single image, releasing the
// file before returning. Returns a wrapped ErrImageDecode if the file cannot
// be opened or decoded.
func measureFile(path string) (ImageStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImageStat{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return ImageStat{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}

	return measureImage(img), nil
}

// measureImage records the dimensions and the per-channel color mean and
// population standard deviation of img, on the 0-255 scale. Channel sums and
// squared sums are accumulated in a single pass over the pixels.
func measureImage(img image.Image) ImageStat {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var sum, sumSq [3]float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit values; shift back to 8-bit scale.
			c := [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
			for i, v := range c {
				sum[i] += v
				sumSq[i] += v * v
			}
		}
	}

	stat := ImageStat{Width: w, Height: h}
	n := float64(w * h)
	if n == 0 {
		return stat
	}
	for i := 0; i < 3; i++ {
		mean := sum[i] / n
		variance := sumSq[i]/n - mean*mean
		if variance < 0 {
			variance = 0 // rounding
		}
		stat.Mean[i] = mean
		stat.Std[i] = math.Sqrt(variance)
	}
	return stat
}
