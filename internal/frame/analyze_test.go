package frame

import "testing"

func TestHasRegionChangedFirstFrame(t *testing.T) {
	if hasRegionChanged(nil, regionAnalysis{hasText: false}) {
		t.Fatal("no-text first frame should not be kept")
	}
	if !hasRegionChanged(nil, regionAnalysis{hasText: true}) {
		t.Fatal("text-bearing first frame should be kept")
	}
}

func TestHasRegionChangedTextToggle(t *testing.T) {
	last := regionAnalysis{hasText: false}
	cur := regionAnalysis{hasText: true}
	if !hasRegionChanged(&last, cur) {
		t.Fatal("has_text toggling on should count as changed")
	}
}

func TestHasRegionChangedHashDistance(t *testing.T) {
	last := regionAnalysis{hasText: true, hash: 0b0000000000000000}
	closeCur := regionAnalysis{hasText: true, hash: 0b0000000000000111} // distance 3
	if hasRegionChanged(&last, closeCur) {
		t.Fatal("distance <=4 should not count as changed")
	}
	farCur := regionAnalysis{hasText: true, hash: 0b0000000000011111} // distance 5
	if !hasRegionChanged(&last, farCur) {
		t.Fatal("distance >4 should count as changed")
	}
}

func TestHammingDistance16(t *testing.T) {
	if d := hammingDistance16(0, 0); d != 0 {
		t.Fatalf("expected 0, got %d", d)
	}
	if d := hammingDistance16(0b1111, 0b0000); d != 4 {
		t.Fatalf("expected 4, got %d", d)
	}
}

func TestAnalyzeRegionEmptyTile(t *testing.T) {
	a := analyzeRegion(croppedTile{}, 0, 100)
	if a.hasText {
		t.Fatal("empty tile must not report text")
	}
}

func TestAnalyzeRegionUniformTileHasNoText(t *testing.T) {
	data := make([]byte, 64*64)
	for i := range data {
		data[i] = 90
	}
	tile := croppedTile{data: data, width: 64, height: 64}
	a := analyzeRegion(tile, 0, 100)
	if a.hasText {
		t.Fatal("uniform tile should never report text")
	}
}

func TestAnalyzeRegionStripedTileHasText(t *testing.T) {
	// Two-pixel-wide vertical strokes: a one-pixel line has equal left and
	// right neighbours and so never registers as an edge.
	const w, h = 64, 64
	data := make([]byte, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if col%4 < 2 || row%4 == 0 {
				data[row*w+col] = 255
			}
		}
	}
	tile := croppedTile{data: data, width: w, height: h}
	a := analyzeRegion(tile, 0, 100)
	if !a.hasText {
		t.Fatal("striped tile should be detected as text-bearing")
	}
}
