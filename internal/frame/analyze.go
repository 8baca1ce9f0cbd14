package frame

// analyzeRegion examines the sub-band of tile from startPct to endPct of
// its height: it detects text rows via bright edges plus stroke-transition
// ("jump") counting, then hashes the edge pixels that fall in text rows
// into a 4x4 grid. The jump gate separates text-like rows (dense
// flat-to-edge transitions) from shiny cookware edges.
func analyzeRegion(tile croppedTile, startPct, endPct int) regionAnalysis {
	w, h := tile.width, tile.height
	if w == 0 || h == 0 {
		return regionAnalysis{}
	}

	yStart := h * startPct / 100
	yEnd := h * endPct / 100
	if yEnd <= yStart {
		return regionAnalysis{}
	}
	regionH := yEnd - yStart

	type point struct{ x, y int }

	rowFeatures := make([]int, regionH)
	rowJumps := make([]int, regionH)
	var featurePixels []point

	lineThreshold := float64(w) * 0.05
	const jumpThreshold = 5
	const brightThreshold = 140
	const edgeDiffThreshold = 25
	const jumpFlatThreshold = 10

	data := tile.data
	for y := yStart; y < yEnd; y++ {
		localY := y - yStart
		rowBase := y * w
		for x := 1; x < w-1; x++ {
			idx := rowBase + x
			val := int(data[idx])
			if val <= brightThreshold {
				continue
			}
			right := int(data[idx+1])
			left := int(data[idx-1])
			diff := right - left
			if diff < 0 {
				diff = -diff
			}
			if diff <= edgeDiffThreshold {
				continue
			}

			rowFeatures[localY]++
			featurePixels = append(featurePixels, point{x: x, y: localY})

			if x > 1 {
				prev := int(data[idx-1])
				prevPrev := int(data[idx-2])
				prevDiff := prev - prevPrev
				if prevDiff < 0 {
					prevDiff = -prevDiff
				}
				if prevDiff < jumpFlatThreshold {
					rowJumps[localY]++
				}
			}
		}
	}

	validLines := make([]bool, regionH)
	anyValid := false
	for y := 0; y < regionH; y++ {
		if float64(rowFeatures[y]) > lineThreshold && rowJumps[y] > jumpThreshold {
			validLines[y] = true
			anyValid = true
		}
	}
	if !anyValid {
		return regionAnalysis{}
	}

	const gridDim = 4
	blockW := w / gridDim
	blockH := regionH / gridDim
	if blockW == 0 {
		blockW = 1
	}
	if blockH == 0 {
		blockH = 1
	}

	var gridFeatures [gridDim * gridDim]int
	for _, p := range featurePixels {
		if !validLines[p.y] {
			continue
		}
		cellX := p.x / blockW
		if cellX >= gridDim {
			cellX = gridDim - 1
		}
		cellY := p.y / blockH
		if cellY >= gridDim {
			cellY = gridDim - 1
		}
		gridFeatures[cellY*gridDim+cellX]++
	}

	sum := 0
	for _, v := range gridFeatures {
		sum += v
	}
	mean := float64(sum) / float64(len(gridFeatures))

	var hash uint16
	for i, v := range gridFeatures {
		if float64(v) > mean {
			hash |= 1 << uint(i)
		}
	}

	return regionAnalysis{hasText: true, hash: hash}
}

// hammingDistance16 returns the popcount of a XOR b.
func hammingDistance16(a, b uint16) int {
	x := a ^ b
	count := 0
	for x != 0 {
		count++
		x &= x - 1
	}
	return count
}

// hasRegionChanged is the content-changed rule: text appeared or
// disappeared, or both analyses have text and the hashes differ by more
// than the distance threshold.
func hasRegionChanged(last *regionAnalysis, current regionAnalysis) bool {
	if last == nil {
		return current.hasText
	}
	if last.hasText != current.hasText {
		return true
	}
	if !current.hasText {
		return false
	}
	return hammingDistance16(last.hash, current.hash) > contentHashDistanceThreshold
}
