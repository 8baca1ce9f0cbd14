package frame

// cropLumaTile trims topRatio/bottomRatio of rows, takes the centered square
// of side min(cropHeight, width) from the remaining band, and nearest-
// neighbor scales it to tileSize x tileSize. Out-of-bounds samples clamp to
// the last valid row/column; an empty crop yields an empty tile, which the
// analyzer treats as no-text.
func cropLumaTile(y []byte, width, height int, topRatio, bottomRatio float64) croppedTile {
	if width <= 0 || height <= 0 {
		return croppedTile{}
	}

	topCrop := int(float64(height) * topRatio)
	bottomCrop := int(float64(height) * bottomRatio)
	cropHeight := height - topCrop - bottomCrop
	if cropHeight <= 0 {
		return croppedTile{}
	}

	cropSize := cropHeight
	if width < cropSize {
		cropSize = width
	}
	xOffset := (width - cropSize) / 2
	yOffset := topCrop + (cropHeight-cropSize)/2
	scale := float64(cropSize) / float64(tileSize)

	out := make([]byte, tileSize*tileSize)
	for outY := 0; outY < tileSize; outY++ {
		srcY := yOffset + int(float64(outY)*scale)
		if srcY >= height {
			srcY = height - 1
		}
		for outX := 0; outX < tileSize; outX++ {
			srcX := xOffset + int(float64(outX)*scale)
			if srcX >= width {
				srcX = width - 1
			}
			idx := srcY*width + srcX
			var v byte = 128
			if idx >= 0 && idx < len(y) {
				v = y[idx]
			}
			out[outY*tileSize+outX] = v
		}
	}

	return croppedTile{data: out, width: tileSize, height: tileSize}
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// CropAndResizeFrameWithConfig crops and nearest-neighbor resizes a YUV
// frame per cfg, converting YUV420 to RGB with integer BT.601
// coefficients (R = Y + (359V)>>8; G = Y - (88U + 183V)>>8;
// B = Y + (454U)>>8). Distinct code path from the internal ProcessBatch
// crop and from legacy.RawFrame.ToRGBA's float coefficients.
func CropAndResizeFrameWithConfig(f YUVFrame, cfg FrameCropConfig) CroppedFrame {
	width, height := f.Width, f.Height
	out := CroppedFrame{
		Width:       cfg.OutputSize,
		Height:      cfg.OutputSize,
		TimestampMs: f.TimestampMs,
		FrameNumber: f.FrameNumber,
	}
	if width <= 0 || height <= 0 || cfg.OutputSize <= 0 {
		return out
	}

	topCrop := int(float64(height) * cfg.TopCropRatio)
	bottomCrop := int(float64(height) * cfg.BottomCropRatio)
	cropHeight := height - topCrop - bottomCrop
	if cropHeight <= 0 {
		return out
	}
	cropWidth := width
	targetWidth := cropHeight
	if targetWidth > cropWidth {
		targetWidth = cropWidth
	}
	xOffset := (cropWidth - targetWidth) / 2
	yOffset := topCrop + (cropHeight-targetWidth)/2
	scale := float64(targetWidth) / float64(cfg.OutputSize)

	uvWidth := width / 2
	rgb := make([]byte, cfg.OutputSize*cfg.OutputSize*3)

	for outY := 0; outY < cfg.OutputSize; outY++ {
		srcY := yOffset + int(float64(outY)*scale)
		if srcY >= height {
			srcY = height - 1
		}
		for outX := 0; outX < cfg.OutputSize; outX++ {
			srcX := xOffset + int(float64(outX)*scale)
			if srcX >= width {
				srcX = width - 1
			}

			yIdx := srcY*width + srcX
			var yVal int = 128
			if yIdx >= 0 && yIdx < len(f.Y) {
				yVal = int(f.Y[yIdx])
			}

			uvX, uvY := srcX/2, srcY/2
			uvIdx := uvY*uvWidth + uvX
			var uVal, vVal int
			if uvIdx >= 0 && uvIdx < len(f.U) {
				uVal = int(f.U[uvIdx]) - 128
			}
			if uvIdx >= 0 && uvIdx < len(f.V) {
				vVal = int(f.V[uvIdx]) - 128
			}

			r := clampByte(yVal + ((359 * vVal) >> 8))
			g := clampByte(yVal - ((88*uVal + 183*vVal) >> 8))
			b := clampByte(yVal + ((454 * uVal) >> 8))

			idx := (outY*cfg.OutputSize + outX) * 3
			rgb[idx] = r
			rgb[idx+1] = g
			rgb[idx+2] = b
		}
	}

	out.RGBData = rgb
	return out
}
