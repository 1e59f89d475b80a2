package material

import (
	"image"
	"image/color"
	"testing"

	"github.com/DenisKolodin/lustre-go/pkg/core"
)

func TestImageTexture_CheckerLookup(t *testing.T) {
	// 2x2 image, white on the main diagonal. Row 0 is the TOP of the image.
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1),
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	// Low V addresses the BOTTOM row because V grows upward
	cases := []struct {
		name string
		uv   core.Vec2
		want core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := texture.Evaluate(tc.uv, core.Vec3{})
			if got != tc.want {
				t.Errorf("Expected %v at UV%v, got %v", tc.want, tc.uv, got)
			}
		})
	}
}

func TestImageTexture_WrapsUV(t *testing.T) {
	texture := NewImageTexture(1, 1, []core.Vec3{core.NewVec3(1, 0, 0)})
	red := core.NewVec3(1, 0, 0)

	// Any UV, inside the unit square or far outside it, lands on the
	// single red pixel
	uvs := []core.Vec2{
		core.NewVec2(0.5, 0.5),
		core.NewVec2(1.5, 0.5),
		core.NewVec2(0.5, 1.5),
		core.NewVec2(-0.5, -0.5),
		core.NewVec2(2.3, 3.7),
	}

	for _, uv := range uvs {
		got := texture.Evaluate(uv, core.Vec3{})
		if got != red {
			t.Errorf("Expected %v at UV%v, got %v", red, uv, got)
		}
	}
}

func TestImageTexture_PixelSelection(t *testing.T) {
	// 4x4 ramp from 0 at pixel (0,0) to 1 at pixel (3,3)
	pixels := make([]core.Vec3, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			val := float64(y*4+x) / 15.0
			pixels[y*4+x] = core.NewVec3(val, val, val)
		}
	}
	texture := NewImageTexture(4, 4, pixels)

	// V=0.875 flips to image row 0 and U=0.125 picks pixel x=0
	got := texture.Evaluate(core.NewVec2(0.125, 0.875), core.Vec3{})
	want := core.NewVec3(0, 0, 0)
	if got != want {
		t.Errorf("Expected %v at the ramp start, got %v", want, got)
	}

	// V=0.125 flips to image row 3 and U=0.875 picks pixel x=3
	got = texture.Evaluate(core.NewVec2(0.875, 0.125), core.Vec3{})
	want = core.NewVec3(1, 1, 1)
	if got != want {
		t.Errorf("Expected %v at the ramp end, got %v", want, got)
	}

	// V=0 lands exactly on the height boundary and must clamp, not crash
	got = texture.Evaluate(core.NewVec2(0.125, 0.0), core.Vec3{})
	want = core.NewVec3(12.0/15.0, 12.0/15.0, 12.0/15.0)
	if got != want {
		t.Errorf("Expected %v at clamped bottom edge, got %v", want, got)
	}
}

func TestImageTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(1, 0, color.NRGBA{R: 0, G: 255, B: 0, A: 255})

	texture := NewImageTextureFromImage(img)
	if texture.Width != 2 || texture.Height != 1 {
		t.Fatalf("Expected 2x1 texture, got %dx%d", texture.Width, texture.Height)
	}

	left := texture.Evaluate(core.NewVec2(0.25, 0.5), core.Vec3{})
	if left.Subtract(core.NewVec3(1, 0, 0)).Length() > 1e-3 {
		t.Errorf("Expected red on the left, got %v", left)
	}

	right := texture.Evaluate(core.NewVec2(0.75, 0.5), core.Vec3{})
	if right.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-3 {
		t.Errorf("Expected green on the right, got %v", right)
	}
}

func TestCheckerboardTexture(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewCheckerboardTexture(8, 8, 4, white, black)

	// Top-left check is color1, its right neighbor color2
	topLeft := texture.Evaluate(core.NewVec2(0.125, 0.875), core.Vec3{})
	if topLeft != white {
		t.Errorf("Expected white in first check, got %v", topLeft)
	}

	topRight := texture.Evaluate(core.NewVec2(0.875, 0.875), core.Vec3{})
	if topRight != black {
		t.Errorf("Expected black in second check, got %v", topRight)
	}

	// Diagonal neighbor shares the first check's color
	bottomRight := texture.Evaluate(core.NewVec2(0.875, 0.125), core.Vec3{})
	if bottomRight != white {
		t.Errorf("Expected white in diagonal check, got %v", bottomRight)
	}
}

func TestUVDebugTexture(t *testing.T) {
	texture := NewUVDebugTexture(4, 4)

	// U drives red: sample near u=1 should be much redder than near u=0
	left := texture.Evaluate(core.NewVec2(0.01, 0.5), core.Vec3{})
	right := texture.Evaluate(core.NewVec2(0.99, 0.5), core.Vec3{})
	if right.X <= left.X {
		t.Errorf("Expected red to grow with U: left %v, right %v", left, right)
	}

	// Blue channel stays zero everywhere
	if left.Z != 0 || right.Z != 0 {
		t.Errorf("Expected zero blue channel, got %v and %v", left, right)
	}
}
