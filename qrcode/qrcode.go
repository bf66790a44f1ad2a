// Package qrcode renders destination URLs as PNG QR codes wrapped in data URIs.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

const DataURIPrefix = "data:image/png;base64,"

type Options struct {
	// Size is the width and height of the image in pixels.
	Size int
	// Margin is the quiet zone in modules.
	Margin int
	Dark   color.Color
	Light  color.Color
}

// DefaultOptions renders 300x300 black-on-white codes with a two module margin.
var DefaultOptions = Options{
	Size:   300,
	Margin: 2,
	Dark:   color.Black,
	Light:  color.White,
}

var ErrEmptyContent = errors.New("qrcode: empty content")

type Generator struct {
	opts   Options
	writer *zxqr.QRCodeWriter
}

func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts, writer: zxqr.NewQRCodeWriter()}
}

// Image encodes content into a raster image.
func (g *Generator) Image(content string) (image.Image, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_MARGIN:           g.opts.Margin,
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_M,
	}
	matrix, err := g.writer.Encode(content, gozxing.BarcodeFormat_QR_CODE, g.opts.Size, g.opts.Size, hints)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}

	w, h := matrix.GetWidth(), matrix.GetHeight()
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{g.opts.Light, g.opts.Dark})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}

// PNG encodes content and returns the PNG bytes.
func (g *Generator) PNG(content string) ([]byte, error) {
	img, err := g.Image(content)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI encodes content as a base64 PNG data URI.
func (g *Generator) DataURI(content string) (string, error) {
	raw, err := g.PNG(content)
	if err != nil {
		return "", err
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reads the text back from a data URI produced by DataURI. The image
// is expected to be an unrotated, undistorted rendering.
func Decode(dataURI string) (string, error) {
	if len(dataURI) < len(DataURIPrefix) || dataURI[:len(DataURIPrefix)] != DataURIPrefix {
		return "", errors.New("qrcode: not a png data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[len(DataURIPrefix):])
	if err != nil {
		return "", fmt.Errorf("qrcode: base64: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("qrcode: png: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("qrcode: bitmap: %w", err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	}
	result, err := zxqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("qrcode: decode: %w", err)
	}
	return result.GetText(), nil
}
