package render

import (
	"bytes"
	"fmt"
	"image"
	"math"

	// Stdlib and extended decoders registered for image.DecodeConfig, so
	// intrinsic sizing works across the common embed formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// EMU (English Metric Unit) conversions. Intrinsic pixel dimensions are
// interpreted at 96 DPI.
const (
	emuPerCm    = 360000
	emuPerPixel = 9525
)

// defaultImageWidthCm sizes images that cannot be decoded and carry no
// explicit dimensions.
const defaultImageWidthCm = 10.0

// imageInfo holds what the renderer needs to embed one image.
type imageInfo struct {
	extension   string
	contentType string
	// extent in EMU
	cx int64
	cy int64
}

var imageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// inspectImage determines the image's format and display extent. Explicit
// centimeter dimensions win; a missing dimension is derived from the
// intrinsic aspect ratio; with neither, intrinsic pixels at 96 DPI apply.
func inspectImage(data []byte, widthCm, heightCm float64) (*imageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}
	contentType, ok := imageContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has degenerate dimensions %dx%d", cfg.Width, cfg.Height)
	}

	info := &imageInfo{extension: format, contentType: contentType}
	aspect := float64(cfg.Height) / float64(cfg.Width)
	switch {
	case widthCm > 0 && heightCm > 0:
		info.cx = cmToEMU(widthCm)
		info.cy = cmToEMU(heightCm)
	case widthCm > 0:
		info.cx = cmToEMU(widthCm)
		info.cy = cmToEMU(widthCm * aspect)
	case heightCm > 0:
		info.cx = cmToEMU(heightCm / aspect)
		info.cy = cmToEMU(heightCm)
	default:
		info.cx = int64(cfg.Width) * emuPerPixel
		info.cy = int64(cfg.Height) * emuPerPixel
	}
	return info, nil
}

func cmToEMU(cm float64) int64 {
	return int64(math.Round(cm * emuPerCm))
}
