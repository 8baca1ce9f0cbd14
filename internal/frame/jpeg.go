package frame

import (
	"bytes"
	"image"
	"image/jpeg"
)

// compressToJPEG encodes a grayscale tile at jpegQuality. An empty or
// malformed tile yields an empty slice rather than an error; the keyframe
// is still emitted and a zero-length payload signals the degraded case to
// callers.
func compressToJPEG(tile croppedTile) []byte {
	if len(tile.data) == 0 || tile.width == 0 || tile.height == 0 {
		return nil
	}

	img := image.NewGray(image.Rect(0, 0, tile.width, tile.height))
	copy(img.Pix, tile.data)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil
	}
	return buf.Bytes()
}
