// Package legacy is the lower-throughput single-frame compatibility shim:
// RGBA/full-YUV frame ingest via a diff filter, text detector,
// region-locked deduplicator, and a state machine driving an adaptive
// skip/lock/cooldown cycle. Kept only as a compatibility path for callers
// that cannot supply a whole batch up front; package frame's Extractor is
// the primary path.
package legacy

// Frame is a decoded RGBA video frame.
type Frame struct {
	Width       int
	Height      int
	Data        []byte // RGBA
	TimestampMs uint64
	FrameNumber uint64
}

func (f Frame) pixelCount() int { return f.Width * f.Height }

// ToRGB strips the alpha channel.
func (f Frame) ToRGB() []byte {
	rgb := make([]byte, 0, f.pixelCount()*3)
	for i := 0; i+3 < len(f.Data); i += 4 {
		rgb = append(rgb, f.Data[i], f.Data[i+1], f.Data[i+2])
	}
	return rgb
}

// ResizeTo produces a box-averaged resize to targetWidth x targetHeight.
func (f Frame) ResizeTo(targetWidth, targetHeight int) Frame {
	if targetWidth <= 0 || targetHeight <= 0 || f.Width <= 0 || f.Height <= 0 {
		return Frame{Width: targetWidth, Height: targetHeight, TimestampMs: f.TimestampMs, FrameNumber: f.FrameNumber}
	}

	out := make([]byte, targetWidth*targetHeight*4)
	scaleX := float64(f.Width) / float64(targetWidth)
	scaleY := float64(f.Height) / float64(targetHeight)

	for ty := 0; ty < targetHeight; ty++ {
		srcY0 := int(float64(ty) * scaleY)
		srcY1 := int(float64(ty+1) * scaleY)
		if srcY1 <= srcY0 {
			srcY1 = srcY0 + 1
		}
		if srcY1 > f.Height {
			srcY1 = f.Height
		}
		for tx := 0; tx < targetWidth; tx++ {
			srcX0 := int(float64(tx) * scaleX)
			srcX1 := int(float64(tx+1) * scaleX)
			if srcX1 <= srcX0 {
				srcX1 = srcX0 + 1
			}
			if srcX1 > f.Width {
				srcX1 = f.Width
			}

			var rSum, gSum, bSum, aSum, count int
			for sy := srcY0; sy < srcY1; sy++ {
				rowBase := sy * f.Width * 4
				for sx := srcX0; sx < srcX1; sx++ {
					idx := rowBase + sx*4
					if idx+3 >= len(f.Data) {
						continue
					}
					rSum += int(f.Data[idx])
					gSum += int(f.Data[idx+1])
					bSum += int(f.Data[idx+2])
					aSum += int(f.Data[idx+3])
					count++
				}
			}

			outIdx := (ty*targetWidth + tx) * 4
			if count == 0 {
				out[outIdx+3] = 255
				continue
			}
			out[outIdx] = byte(rSum / count)
			out[outIdx+1] = byte(gSum / count)
			out[outIdx+2] = byte(bSum / count)
			out[outIdx+3] = byte(aSum / count)
		}
	}

	return Frame{Width: targetWidth, Height: targetHeight, Data: out, TimestampMs: f.TimestampMs, FrameNumber: f.FrameNumber}
}

// FrameInfo is a lightweight copy of a Frame's metadata.
type FrameInfo struct {
	Width       int
	Height      int
	TimestampMs uint64
	FrameNumber uint64
}

func FrameInfoFromFrame(f Frame) FrameInfo {
	return FrameInfo{Width: f.Width, Height: f.Height, TimestampMs: f.TimestampMs, FrameNumber: f.FrameNumber}
}

// RawFrame is frame data as passed in from the native/decoder layer: a
// 4:2:0 YUV frame.
type RawFrame struct {
	Width       int
	Height      int
	Y           []byte
	U           []byte
	V           []byte
	TimestampMs uint64
	FrameNumber uint64
}

// ToRGBA converts a full YUV420 frame to RGBA using floating-point BT.601
// coefficients. This conversion predates the integer one in package frame;
// the two are not expected to agree pixel-for-pixel.
func (rf RawFrame) ToRGBA() Frame {
	data := make([]byte, rf.Width*rf.Height*4)
	uvWidth := rf.Width / 2

	for y := 0; y < rf.Height; y++ {
		for x := 0; x < rf.Width; x++ {
			yIdx := y*rf.Width + x
			uvRow := y / 2
			uvCol := x / 2
			uvIdx := uvRow*uvWidth + uvCol

			var yVal, uVal, vVal float64
			if yIdx < len(rf.Y) {
				yVal = float64(rf.Y[yIdx])
			}
			if uvIdx < len(rf.U) {
				uVal = float64(rf.U[uvIdx]) - 128.0
			}
			if uvIdx < len(rf.V) {
				vVal = float64(rf.V[uvIdx]) - 128.0
			}

			r := clampF(yVal + 1.402*vVal)
			g := clampF(yVal - 0.344136*uVal - 0.714136*vVal)
			b := clampF(yVal + 1.772*uVal)

			idx := yIdx * 4
			data[idx] = r
			data[idx+1] = g
			data[idx+2] = b
			data[idx+3] = 255
		}
	}

	return Frame{Width: rf.Width, Height: rf.Height, Data: data, TimestampMs: rf.TimestampMs, FrameNumber: rf.FrameNumber}
}

func clampF(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
