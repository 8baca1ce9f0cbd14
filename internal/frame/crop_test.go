package frame

import "testing"

func TestCropLumaTileEmptyCrop(t *testing.T) {
	// Trim ratios that together remove every row leave an empty crop.
	y := make([]byte, 10*2)
	tile := cropLumaTile(y, 10, 2, 0.5, 0.5)
	if tile.width != 0 || tile.height != 0 {
		t.Fatalf("expected empty tile, got %dx%d", tile.width, tile.height)
	}
}

func TestCropLumaTileProducesFixedSize(t *testing.T) {
	width, height := 1080, 1920
	y := make([]byte, width*height)
	for i := range y {
		y[i] = byte(i % 256)
	}
	tile := cropLumaTile(y, width, height, batchTopCropRatio, batchBottomCropRatio)
	if tile.width != tileSize || tile.height != tileSize {
		t.Fatalf("expected %dx%d tile, got %dx%d", tileSize, tileSize, tile.width, tile.height)
	}
	if len(tile.data) != tileSize*tileSize {
		t.Fatalf("expected %d bytes, got %d", tileSize*tileSize, len(tile.data))
	}
}

func TestCropAndResizeFrameWithConfigFlatFrame(t *testing.T) {
	width, height := 64, 64
	y := make([]byte, width*height)
	u := make([]byte, (width/2)*(height/2))
	v := make([]byte, (width/2)*(height/2))
	for i := range y {
		y[i] = 128
	}
	for i := range u {
		u[i] = 128
		v[i] = 128
	}
	frame := YUVFrame{Width: width, Height: height, Y: y, U: u, V: v, TimestampMs: 10, FrameNumber: 1}
	cfg := DefaultFrameCropConfig()
	out := CropAndResizeFrameWithConfig(frame, cfg)

	if out.Width != cfg.OutputSize || out.Height != cfg.OutputSize {
		t.Fatalf("unexpected output size %dx%d", out.Width, out.Height)
	}
	if len(out.RGBData) != cfg.OutputSize*cfg.OutputSize*3 {
		t.Fatalf("expected %d bytes, got %d", cfg.OutputSize*cfg.OutputSize*3, len(out.RGBData))
	}
	// Y=128, U=V=128 (zero chroma) should produce neutral gray everywhere.
	for i := 0; i < 30; i += 3 {
		if out.RGBData[i] != 128 || out.RGBData[i+1] != 128 || out.RGBData[i+2] != 128 {
			t.Fatalf("expected neutral gray pixel at %d, got %d %d %d", i, out.RGBData[i], out.RGBData[i+1], out.RGBData[i+2])
		}
	}
}
