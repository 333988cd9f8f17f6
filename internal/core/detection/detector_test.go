package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDetector(t *testing.T, handler http.Handler) (*Detector, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	det := NewDetector(&config.DetectorConfig{
		BaseURL:       srv.URL,
		Timeout:       5 * time.Second,
		ConfThreshold: 0.3,
	})
	return det, srv
}

func TestDetectParsesAndFilters(t *testing.T) {
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("missing image field: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"detections": []Detection{
				{ClassID: 9, Confidence: 0.92, BBox: []float64{0, 0, 10, 10}},
				{ClassID: 6, Confidence: 0.12}, // 低於門檻，應被過濾
			},
		})
	}))

	got, err := det.Detect(context.Background(), []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 detection after threshold filter, got %d", len(got))
	}
	if got[0].ClassID != 9 || got[0].Confidence != 0.92 {
		t.Errorf("unexpected detection: %+v", got[0])
	}
}

func TestDetectParsesMislabeledContentType(t *testing.T) {
	// 推論服務漏標 Content-Type 時，回應仍然要被當成 JSON 解析，
	// 不能靜默讀成零偵測
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"detections": []Detection{
				{ClassID: 2, Confidence: 0.88, BBox: []float64{1, 1, 5, 5}},
			},
		})
	}))

	got, err := det.Detect(context.Background(), []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ClassID != 2 {
		t.Fatalf("expected the mislabeled response to be parsed, got %+v", got)
	}
}

func TestDetectZeroDetectionsIsNotAnError(t *testing.T) {
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"detections": []Detection{}})
	}))

	got, err := det.Detect(context.Background(), []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("zero detections must be a valid outcome, got error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no detections, got %d", len(got))
	}
}

func TestDetectRejectedImageIsDecodeError(t *testing.T) {
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cannot decode image", http.StatusBadRequest)
	}))

	_, err := det.Detect(context.Background(), []byte("not-an-image"))
	if !errors.Is(err, common.ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
	if errors.Is(err, common.ErrDetection) {
		t.Error("decode failure must be distinguishable from model failure")
	}
}

func TestDetectServerFailureIsDetectionError(t *testing.T) {
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))

	_, err := det.Detect(context.Background(), []byte("fake-jpeg"))
	if !errors.Is(err, common.ErrDetection) {
		t.Fatalf("expected ErrDetection, got %v", err)
	}
}

func TestAnnotateReturnsImageBytes(t *testing.T) {
	annotated := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/annotate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(annotated)
	}))

	got, err := det.Annotate(context.Background(), []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, annotated) {
		t.Fatalf("annotated bytes mismatch: %v", got)
	}
}

func TestHealth(t *testing.T) {
	det, _ := newTestDetector(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	if err := det.Health(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
}
