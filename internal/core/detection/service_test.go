package detection

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	imageService "recipe-finder/internal/core/image"
	"recipe-finder/internal/pkg/common"
)

// stubInference 以固定回應實作 Inference
type stubInference struct {
	detections  []Detection
	detectErr   error
	annotated   []byte
	annotateErr error
}

func (s *stubInference) Detect(ctx context.Context, imageBytes []byte) ([]Detection, error) {
	return s.detections, s.detectErr
}

func (s *stubInference) Annotate(ctx context.Context, imageBytes []byte) ([]byte, error) {
	return s.annotated, s.annotateErr
}

// testPNG 產生一張可通過本地解碼檢查的小圖
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func newScanService(inf Inference) *Service {
	return NewService(inf, imageService.NewService(10<<20))
}

func TestScanImageSuccess(t *testing.T) {
	svc := newScanService(&stubInference{
		detections: []Detection{
			{ClassID: 9, Confidence: 0.9, BBox: []float64{0, 0, 5, 5}},
			{ClassID: 6, Confidence: 0.8},
			{ClassID: 9, Confidence: 0.95},
		},
		annotated: []byte{0x01, 0x02},
	})

	result, err := svc.ScanImage(context.Background(), testPNG(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(result.Ingredients))
	}
	if result.Ingredients[0].Name != "tomato" || result.Ingredients[1].Name != "onion" {
		t.Errorf("unexpected ingredients: %v", Names(result.Ingredients))
	}
	if !bytes.Equal(result.Annotated, []byte{0x01, 0x02}) {
		t.Error("annotated image not passed through")
	}
}

func TestScanImageEmptyDetectionIsFailure(t *testing.T) {
	svc := newScanService(&stubInference{detections: nil})

	_, err := svc.ScanImage(context.Background(), testPNG(t))
	if !errors.Is(err, common.ErrNoIngredientsDetected) {
		t.Fatalf("expected ErrNoIngredientsDetected, got %v", err)
	}
}

func TestScanImageUnmappedOnlyIsFailure(t *testing.T) {
	// 有偵測結果但全部無法對應到標籤表，等同沒偵測到食材
	svc := newScanService(&stubInference{
		detections: []Detection{{ClassID: 99, Confidence: 0.9}},
	})

	_, err := svc.ScanImage(context.Background(), testPNG(t))
	if !errors.Is(err, common.ErrNoIngredientsDetected) {
		t.Fatalf("expected ErrNoIngredientsDetected, got %v", err)
	}
}

func TestScanImageUndecodableBytes(t *testing.T) {
	svc := newScanService(&stubInference{})

	_, err := svc.ScanImage(context.Background(), []byte("definitely not an image"))
	if !errors.Is(err, common.ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
}

func TestScanImagePropagatesDetectionError(t *testing.T) {
	svc := newScanService(&stubInference{
		detectErr: common.ErrDetection,
	})

	_, err := svc.ScanImage(context.Background(), testPNG(t))
	if !errors.Is(err, common.ErrDetection) {
		t.Fatalf("expected ErrDetection, got %v", err)
	}
}
