package legacy

import "math"

// TextDetectionResult reports whether a frame carries burned-in text.
type TextDetectionResult struct {
	HasText         bool
	Confidence      float32
	TextRegionCount int
}

// TextDetector classifies frames by subtitle presence. DetectYUV is the
// fast path operating directly on the Y plane; Detect takes a full RGBA
// frame.
type TextDetector interface {
	Detect(frame Frame) TextDetectionResult
	DetectYUV(width, height int, yPlane []byte) TextDetectionResult
}

// MockTextDetector is a test harness driven by a predicate on the frame
// number.
type MockTextDetector struct {
	pattern func(frameNumber uint64) bool
}

func NewMockTextDetector() *MockTextDetector {
	return &MockTextDetector{}
}

func MockTextDetectorWithPattern(pattern func(uint64) bool) *MockTextDetector {
	return &MockTextDetector{pattern: pattern}
}

func MockTextDetectorWithFixedFrames(frames []uint64) *MockTextDetector {
	set := make(map[uint64]struct{}, len(frames))
	for _, f := range frames {
		set[f] = struct{}{}
	}
	return &MockTextDetector{pattern: func(n uint64) bool {
		_, ok := set[n]
		return ok
	}}
}

func (d *MockTextDetector) result(frameNumber uint64) TextDetectionResult {
	hasText := d.pattern != nil && d.pattern(frameNumber)
	res := TextDetectionResult{HasText: hasText}
	if hasText {
		res.Confidence = 0.85
		res.TextRegionCount = 2
	}
	return res
}

func (d *MockTextDetector) Detect(frame Frame) TextDetectionResult {
	return d.result(frame.FrameNumber)
}

func (d *MockTextDetector) DetectYUV(width, height int, yPlane []byte) TextDetectionResult {
	return d.result(0)
}

// SimpleFeatureDetector is a lightweight full-image detector: gradient
// density plus luminance variance. Used as a fallback when the cooking
// heuristics don't apply.
type SimpleFeatureDetector struct {
	edgeThreshold    float32
	textureThreshold float32
}

func NewSimpleFeatureDetector() *SimpleFeatureDetector {
	return &SimpleFeatureDetector{edgeThreshold: 0.08, textureThreshold: 0.08}
}

func (d *SimpleFeatureDetector) Detect(frame Frame) TextDetectionResult {
	n := len(frame.Data) / 4
	gray := make([]float32, 0, n)
	for i := 0; i+3 < len(frame.Data); i += 4 {
		r := float32(frame.Data[i]) / 255.0
		g := float32(frame.Data[i+1]) / 255.0
		b := float32(frame.Data[i+2]) / 255.0
		gray = append(gray, r*0.299+g*0.587+b*0.114)
	}

	edgeDensity := d.detectEdges(gray, frame.Width, frame.Height)
	textureScore := d.detectTexture(gray)

	hasText := edgeDensity > 0.05 && textureScore > d.textureThreshold

	res := TextDetectionResult{
		HasText:    hasText,
		Confidence: minF32(edgeDensity+textureScore, 1.0),
	}
	if hasText {
		res.TextRegionCount = 1
	}
	return res
}

// DetectYUV uses the Y plane directly as grayscale with an integer fast
// path: pixels are strided by 3 and gradients compared squared to avoid
// the square root.
func (d *SimpleFeatureDetector) DetectYUV(width, height int, yPlane []byte) TextDetectionResult {
	if len(yPlane) == 0 {
		return TextDetectionResult{}
	}

	edgeDensity := d.detectEdgesFast(yPlane, width, height)

	var sum uint64
	for _, y := range yPlane {
		sum += uint64(y)
	}
	mean := float32(sum) / float32(len(yPlane))
	var variance float32
	for _, y := range yPlane {
		diff := float32(y) - mean
		variance += diff * diff
	}
	variance /= float32(len(yPlane))
	textureScore := float32(math.Sqrt(float64(variance))) / 255.0

	// Lower edge threshold here than Detect: the stride undercounts edges.
	hasText := edgeDensity > 0.015 && textureScore > d.textureThreshold

	res := TextDetectionResult{
		HasText:    hasText,
		Confidence: minF32(edgeDensity+textureScore, 1.0),
	}
	if hasText {
		res.TextRegionCount = 1
	}
	return res
}

func (d *SimpleFeatureDetector) detectEdgesFast(gray []byte, width, height int) float32 {
	const skip = 3
	if width < 3 || height < 3 {
		return 0
	}
	thresholdI := int32(d.edgeThreshold * 255.0)
	thresholdSq := thresholdI * thresholdI

	var edgeCount, total int
	for y := 1; y < height-1; y += skip {
		for x := 1; x < width-1; x += skip {
			idx := y*width + x
			if idx+width >= len(gray) {
				continue
			}
			gx := int32(gray[idx+1]) - int32(gray[idx-1])
			gy := int32(gray[idx+width]) - int32(gray[idx-width])
			if gx*gx+gy*gy > thresholdSq {
				edgeCount++
			}
			total++
		}
	}

	if total == 0 {
		return 0
	}
	return float32(edgeCount) / float32(total)
}

func (d *SimpleFeatureDetector) detectEdges(gray []float32, width, height int) float32 {
	if width < 3 || height < 3 {
		return 0
	}
	var edgeCount, total int
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x
			if idx+width >= len(gray) {
				continue
			}
			gx := gray[idx+1] - gray[idx-1]
			gy := gray[idx+width] - gray[idx-width]
			gradient := float32(math.Sqrt(float64(gx*gx + gy*gy)))
			if gradient > d.edgeThreshold {
				edgeCount++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float32(edgeCount) / float32(total)
}

func (d *SimpleFeatureDetector) detectTexture(gray []float32) float32 {
	if len(gray) == 0 {
		return 0
	}
	var sum float32
	for _, v := range gray {
		sum += v
	}
	mean := sum / float32(len(gray))
	var variance float32
	for _, v := range gray {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float32(len(gray))
	return float32(math.Sqrt(float64(variance)))
}

// CookingTextDetector is tuned for burned-in cooking-video subtitles:
// bright high-contrast text with horizontal strokes, rendered in the
// bottom 30% of a 9:16 frame.
type CookingTextDetector struct {
	brightnessThreshold byte
	contrastThreshold   float32
	minTextAreaRatio    float32
}

func NewCookingTextDetector() *CookingTextDetector {
	return &CookingTextDetector{
		brightnessThreshold: 180,
		contrastThreshold:   40.0,
		minTextAreaRatio:    0.005,
	}
}

func (d *CookingTextDetector) Detect(frame Frame) TextDetectionResult {
	n := len(frame.Data) / 4
	gray := make([]byte, 0, n)
	for i := 0; i+3 < len(frame.Data); i += 4 {
		v := (uint32(frame.Data[i])*299 + uint32(frame.Data[i+1])*587 + uint32(frame.Data[i+2])*114) / 1000
		gray = append(gray, byte(v))
	}
	return d.detectBottomRegion(gray, frame.Width, frame.Height)
}

func (d *CookingTextDetector) DetectYUV(width, height int, yPlane []byte) TextDetectionResult {
	return d.detectBottomRegion(yPlane, width, height)
}

// detectBottomRegion classifies the bottom 30% of the frame: enough bright
// pixels, enough contrast, and enough horizontal edges together indicate a
// subtitle.
func (d *CookingTextDetector) detectBottomRegion(gray []byte, width, height int) TextDetectionResult {
	w, h := width, height
	if w <= 0 || h <= 0 || len(gray) < w*h {
		return TextDetectionResult{}
	}

	subtitleHeight := int(float32(h) * 0.3)
	startY := h - subtitleHeight

	var brightPixels, totalPixels uint32
	var sumBrightness uint64
	for y := startY; y < h; y++ {
		for x := 0; x < w; x++ {
			sumBrightness += uint64(gray[y*w+x])
			totalPixels++
		}
	}
	if totalPixels == 0 {
		return TextDetectionResult{}
	}
	mean := byte(sumBrightness / uint64(totalPixels))

	var sumSquaredDiff uint64
	for y := startY; y < h; y++ {
		for x := 0; x < w; x++ {
			pixel := gray[y*w+x]
			if pixel > d.brightnessThreshold {
				brightPixels++
			}
			diff := int64(pixel) - int64(mean)
			sumSquaredDiff += uint64(diff * diff)
		}
	}

	variance := float32(sumSquaredDiff / uint64(totalPixels))
	stdDev := float32(math.Sqrt(float64(variance)))

	horizontalEdgeRatio := d.detectHorizontalEdges(gray, w, h, startY)
	brightRatio := float32(brightPixels) / float32(totalPixels)

	hasBrightText := brightRatio > d.minTextAreaRatio
	hasHighContrast := stdDev > d.contrastThreshold
	hasHorizontalEdges := horizontalEdgeRatio > 0.02

	hasText := hasBrightText && hasHighContrast && hasHorizontalEdges

	var confidence float32
	if hasText {
		brightScore := minF32(brightRatio*10.0, 0.4)
		contrastScore := minF32(stdDev/100.0, 0.3)
		edgeScore := minF32(horizontalEdgeRatio*5.0, 0.3)
		confidence = minF32(brightScore+contrastScore+edgeScore, 1.0)
	}

	res := TextDetectionResult{HasText: hasText, Confidence: confidence}
	if hasText {
		res.TextRegionCount = 1
	}
	return res
}

func (d *CookingTextDetector) detectHorizontalEdges(gray []byte, w, h, startY int) float32 {
	var edgeCount, total uint32
	for y := startY; y < h; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			diff := int(gray[idx+1]) - int(gray[idx-1])
			if diff < 0 {
				diff = -diff
			}
			if diff > 30 {
				edgeCount++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float32(edgeCount) / float32(total)
}

// DetectSubtitleBand scans the bottom 40% for the tallest run of rows whose
// bright-pixel ratio exceeds 15%, and accepts it as a subtitle band when
// its height is plausible for rendered text (3-15% of frame height).
// Returns (found, bandY, bandHeight).
func (d *CookingTextDetector) DetectSubtitleBand(gray []byte, width, height int) (bool, int, int) {
	w, h := width, height
	if w <= 0 || h <= 0 || len(gray) < w*h {
		return false, 0, 0
	}

	startY := h * 6 / 10

	var maxBandHeight, maxBandY, currentHeight, currentY int
	for y := startY; y < h; y++ {
		brightCount := 0
		for x := 0; x < w; x++ {
			if gray[y*w+x] > d.brightnessThreshold {
				brightCount++
			}
		}
		ratio := float32(brightCount) / float32(w)

		if ratio > 0.15 {
			if currentHeight == 0 {
				currentY = y - startY
			}
			currentHeight++
		} else {
			if currentHeight > maxBandHeight {
				maxBandHeight = currentHeight
				maxBandY = currentY
			}
			currentHeight = 0
		}
	}
	if currentHeight > maxBandHeight {
		maxBandHeight = currentHeight
		maxBandY = currentY
	}

	minBandHeight := int(float32(h) * 0.03)
	maxBandHeightLimit := int(float32(h) * 0.15)

	hasSubtitle := maxBandHeight >= minBandHeight &&
		maxBandHeight <= maxBandHeightLimit &&
		maxBandHeight > 0

	return hasSubtitle, startY + maxBandY, maxBandHeight
}

// SubtitleBandHash locates the subtitle band and returns its pHash together
// with the band position, or found=false when no band is present.
func (d *CookingTextDetector) SubtitleBandHash(gray []byte, width, height int) (hash uint64, bandY, bandHeight int, found bool) {
	hasSubtitle, y, hgt := d.DetectSubtitleBand(gray, width, height)
	if !hasSubtitle {
		return 0, 0, 0, false
	}
	return phashYRegion(gray, width, height, 0, y, width, hgt), y, hgt, true
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
