package legacy

import "math/bits"

// RegionHashes carries the per-region perceptual hashes of one frame. Each
// hash is 48 content bits with the region's mean brightness packed into
// bits 48-63 for fast brightness-difference rejection.
type RegionHashes struct {
	Top          uint64 // top third: ingredients/title
	Mid          uint64 // middle third: action
	Bot          uint64 // bottom third: subtitle area
	SubtitleBand uint64 // located subtitle band, the primary dedup key
	HasSubtitle  bool
	TimestampMs  uint64
	Width        int
	Height       int
}

// DedupReason explains a deduplication decision.
type DedupReason int

const (
	ReasonNewScene DedupReason = iota
	ReasonTextChanged
	ReasonTooSimilar
	ReasonForceInterval
)

func (r DedupReason) String() string {
	switch r {
	case ReasonNewScene:
		return "new_scene"
	case ReasonTextChanged:
		return "text_changed"
	case ReasonTooSimilar:
		return "too_similar"
	case ReasonForceInterval:
		return "force_interval"
	}
	return "unknown"
}

// DedupDecision is the outcome of one duplicate check.
type DedupDecision struct {
	IsDuplicate  bool
	Reason       DedupReason
	Similarity   float32
	TextDistance int
}

// FrameDeduplicator keeps a rolling history of the last three kept frames
// and decides whether an incoming frame repeats the most recent one. In
// CheckDuplicateYPlane, once a subtitle band is located its (y, height) is
// locked, so the dedup hash keeps covering the same strip even when motion
// elsewhere shifts the detector's per-frame result. CheckDuplicate on
// precomputed hashes, IsDuplicate, and Add do not use the lock: their
// hashes come from RegionHashesFromYPlane, which locates the band afresh
// on every frame.
type FrameDeduplicator struct {
	history []RegionHashes

	textThreshold       int
	ingredientThreshold int
	actionThreshold     int
	minIntervalMs       uint64
	lastKeyframeTimeMs  uint64

	lockedBandY      int
	lockedBandHeight int
	bandLocked       bool
	regionFlex       int

	detector *CookingTextDetector
}

const dedupHistorySize = 3

func NewFrameDeduplicator() *FrameDeduplicator {
	return &FrameDeduplicator{
		textThreshold:       10,
		ingredientThreshold: 14,
		actionThreshold:     20,
		minIntervalMs:       400,
		regionFlex:          10,
		detector:            NewCookingTextDetector(),
	}
}

// NewFrameDeduplicatorWithThreshold derives the region thresholds from the
// subtitle threshold and uses the tighter 250 ms force interval.
func NewFrameDeduplicatorWithThreshold(textThreshold int) *FrameDeduplicator {
	d := NewFrameDeduplicator()
	d.textThreshold = textThreshold
	d.ingredientThreshold = textThreshold + 4
	d.actionThreshold = textThreshold + 10
	d.minIntervalMs = 250
	return d
}

// CheckDuplicate decides keep/drop for precomputed region hashes.
func (d *FrameDeduplicator) CheckDuplicate(regions RegionHashes) DedupDecision {
	elapsed := regions.TimestampMs - d.lastKeyframeTimeMs
	if regions.TimestampMs < d.lastKeyframeTimeMs {
		elapsed = 0
	}
	if elapsed >= d.minIntervalMs {
		d.addKeyframe(regions)
		return DedupDecision{Reason: ReasonForceInterval, TextDistance: 64}
	}

	if last, ok := d.lastKept(); ok {
		textDist := bits.OnesCount64(regions.SubtitleBand ^ last.SubtitleBand)
		textSim := 1.0 - float32(textDist)/64.0

		if textDist > d.textThreshold {
			d.addKeyframe(regions)
			return DedupDecision{Reason: ReasonTextChanged, Similarity: textSim, TextDistance: textDist}
		}

		if textSim > 0.75 {
			return DedupDecision{IsDuplicate: true, Reason: ReasonTooSimilar, Similarity: textSim, TextDistance: textDist}
		}
	}

	d.addKeyframe(regions)
	return DedupDecision{Reason: ReasonNewScene, TextDistance: 64}
}

// CheckDuplicateYPlane runs the locked-region dedup against a raw Y plane.
func (d *FrameDeduplicator) CheckDuplicateYPlane(yPlane []byte, width, height int, timestampMs uint64) DedupDecision {
	regions := d.lockedRegionHashes(yPlane, width, height)
	regions.TimestampMs = timestampMs
	return d.CheckDuplicate(regions)
}

// lockedRegionHashes computes region hashes against the locked subtitle
// band, locking it first if a band is detectable and none is locked yet.
// Without a detected band the bottom 30% is hashed as a fallback.
func (d *FrameDeduplicator) lockedRegionHashes(yPlane []byte, width, height int) RegionHashes {
	w, h := width, height

	if !d.bandLocked {
		if _, bandY, bandHeight, found := d.detector.SubtitleBandHash(yPlane, w, h); found {
			d.lockedBandY = bandY
			d.lockedBandHeight = bandHeight
			d.bandLocked = true
		}
	}

	bandY, bandHeight := d.lockedBandY, d.lockedBandHeight
	if !d.bandLocked {
		bandY = h * 7 / 10
		bandHeight = h * 3 / 10
	}

	yStart := bandY - d.regionFlex
	if yStart < 0 {
		yStart = 0
	}
	yEnd := bandY + bandHeight + d.regionFlex
	if yEnd > h {
		yEnd = h
	}

	subtitleHash := phashYRegion(yPlane, w, h, 0, yStart, w, yEnd-yStart)

	topH := h / 3
	midStart := topH
	botStart := midStart + h/3

	return RegionHashes{
		Top:          phashYRegion(yPlane, w, h, 0, 0, w, topH),
		Mid:          phashYRegion(yPlane, w, h, 0, midStart, w, h/3),
		Bot:          phashYRegion(yPlane, w, h, 0, botStart, w, h-botStart),
		SubtitleBand: subtitleHash,
		HasSubtitle:  d.bandLocked,
		Width:        w,
		Height:       h,
	}
}

// RegionHashesFromYPlane computes the three-region hashes plus the subtitle
// band hash for a Y plane, without touching deduplicator state.
func RegionHashesFromYPlane(yPlane []byte, width, height int, timestampMs uint64) RegionHashes {
	w, h := width, height

	topH := h / 3
	midStart := topH
	botStart := midStart + h/3

	topHash := phashYRegion(yPlane, w, h, 0, 0, w, topH)
	midHash := phashYRegion(yPlane, w, h, 0, midStart, w, h/3)
	botHash := phashYRegion(yPlane, w, h, 0, botStart, w, h-botStart)

	detector := NewCookingTextDetector()
	subtitleHash, _, _, found := detector.SubtitleBandHash(yPlane, w, h)
	if !found {
		// No subtitle band; the bottom-third hash stands in.
		subtitleHash = botHash
	}

	return RegionHashes{
		Top:          topHash,
		Mid:          midHash,
		Bot:          botHash,
		SubtitleBand: subtitleHash,
		HasSubtitle:  found,
		TimestampMs:  timestampMs,
		Width:        w,
		Height:       h,
	}
}

// ComputeRegionHashes is the RGBA-frame variant of RegionHashesFromYPlane.
func ComputeRegionHashes(frame Frame) RegionHashes {
	n := len(frame.Data) / 4
	gray := make([]byte, 0, n)
	for i := 0; i+3 < len(frame.Data); i += 4 {
		v := (uint32(frame.Data[i])*299 + uint32(frame.Data[i+1])*587 + uint32(frame.Data[i+2])*114) / 1000
		gray = append(gray, byte(v))
	}
	return RegionHashesFromYPlane(gray, frame.Width, frame.Height, frame.TimestampMs)
}

// IsDuplicate is the RGBA-frame convenience wrapper around CheckDuplicate.
func (d *FrameDeduplicator) IsDuplicate(frame Frame) bool {
	return d.CheckDuplicate(ComputeRegionHashes(frame)).IsDuplicate
}

// Add records a kept frame without a duplicate check.
func (d *FrameDeduplicator) Add(frame Frame) {
	d.addKeyframe(ComputeRegionHashes(frame))
}

func (d *FrameDeduplicator) addKeyframe(regions RegionHashes) {
	d.history = append(d.history, regions)
	if len(d.history) > dedupHistorySize {
		d.history = d.history[1:]
	}
	d.lastKeyframeTimeMs = regions.TimestampMs
}

func (d *FrameDeduplicator) lastKept() (RegionHashes, bool) {
	if len(d.history) == 0 {
		return RegionHashes{}, false
	}
	return d.history[len(d.history)-1], true
}

// Clear drops history and the subtitle-region lock.
func (d *FrameDeduplicator) Clear() {
	d.history = nil
	d.lastKeyframeTimeMs = 0
	d.bandLocked = false
}

// Len is the number of frames currently held in history.
func (d *FrameDeduplicator) Len() int { return len(d.history) }

// phashYRegion computes a 48-bit block pHash over an arbitrary rectangle of
// a grayscale plane, with the region mean in the top 16 bits. The rectangle
// is partitioned 8x8; each cell's average is compared to the overall mean.
func phashYRegion(yPlane []byte, imgW, imgH, x, y, w, h int) uint64 {
	blockW := w / 8
	if blockW < 1 {
		blockW = 1
	}
	blockH := h / 8
	if blockH < 1 {
		blockH = 1
	}

	var samples [64]uint32
	var sum uint32

	for by := 0; by < 8; by++ {
		for bx := 0; bx < 8; bx++ {
			var blockSum, count uint32

			yStart := y + by*blockH
			if yStart > imgH {
				yStart = imgH
			}
			yEnd := y + (by+1)*blockH
			if yEnd > imgH {
				yEnd = imgH
			}
			xStart := x + bx*blockW
			if xStart > imgW {
				xStart = imgW
			}
			xEnd := x + (bx+1)*blockW
			if xEnd > imgW {
				xEnd = imgW
			}

			for py := yStart; py < yEnd; py++ {
				rowStart := py * imgW
				for px := xStart; px < xEnd; px++ {
					idx := rowStart + px
					if idx < len(yPlane) {
						blockSum += uint32(yPlane[idx])
						count++
					}
				}
			}

			var avg uint32
			if count > 0 {
				avg = blockSum / count
			}
			samples[by*8+bx] = avg
			sum += avg
		}
	}

	mean := sum / 64

	var hash uint64
	for i, v := range samples {
		if i >= 48 {
			break
		}
		if v > mean {
			hash |= 1 << uint(i)
		}
	}

	return hash | uint64(mean&0xFFFF)<<48
}
