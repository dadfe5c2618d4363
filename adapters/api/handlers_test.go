package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tsinsight/adapters/memory"
	"tsinsight/app"
	"tsinsight/domain/arima"
	"tsinsight/internal/config"
)

// Fixed Gaussian draws; the pipeline outcome over these is stable.
var whiteNoise = []float64{
	0.630, -0.361, -0.566, 0.646, -1.650, 0.651,
	0.414, -2.632, 1.716, -0.554, -0.150, -0.532,
	-1.115, -0.263, -0.339, 0.997, 0.715, 1.293,
	2.619, -0.066, 0.611, 2.385, 1.619, 0.570,
	1.125, 1.101, -1.547, -3.043, 0.258, 0.499,
	0.228, 1.591, 0.166, -0.098, 0.167, -1.334,
	0.193, -0.397, -1.126, 0.108, 0.168, 1.401,
	-0.613, -0.402, -0.545, 0.751, -0.761, -0.711,
	0.249, 0.016, -1.782, -1.046, 1.489, 0.385,
	1.284, 1.908, -0.351, -1.498, -0.766, -1.853,
	-1.033, 0.337, 1.578, 1.263, 1.549, -0.304,
	1.844, 0.255, -0.274, -0.658, 0.232, 1.556,
	-0.992, -0.609, 1.064, -1.472, 0.087, 0.577,
	1.265, -2.479,
}

func newTestApp() *App {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", MaxUploadSize: 1 << 20},
		Engine: arima.DefaultConfig(),
	}
	return NewApp(cfg, app.NewInsightService(), memory.NewRunRepository())
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	rec, body := doJSON(t, newTestApp().Router(), http.MethodGet, "/api/v1/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestUploadAnalyzePredictFlow(t *testing.T) {
	handler := newTestApp().Router()

	// Upload
	rec, body := doJSON(t, handler, http.MethodPost, "/api/v1/upload/data",
		map[string]interface{}{"values": whiteNoise})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Upload status = %d, body %v", rec.Code, body)
	}
	seriesID, _ := body["series_id"].(string)
	if seriesID == "" {
		t.Fatal("Missing series_id in upload response")
	}
	if int(body["count"].(float64)) != len(whiteNoise) {
		t.Errorf("count = %v, want %d", body["count"], len(whiteNoise))
	}

	// Analyze
	rec, body = doJSON(t, handler, http.MethodPost, "/api/v1/analysis/"+seriesID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Analyze status = %d, body %v", rec.Code, body)
	}
	analysisID, _ := body["analysis_id"].(string)
	if analysisID == "" {
		t.Fatal("Missing analysis_id in analysis response")
	}

	// Fetch the stored analysis
	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/analysis/"+analysisID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Get analysis status = %d", rec.Code)
	}
	if body["analysis_id"] != analysisID {
		t.Errorf("analysis_id = %v, want %v", body["analysis_id"], analysisID)
	}

	// Predict
	rec, body = doJSON(t, handler, http.MethodPost, "/api/v1/predict/"+analysisID,
		map[string]interface{}{"steps": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("Predict status = %d, body %v", rec.Code, body)
	}
	forecast, ok := body["forecast"].(map[string]interface{})
	if !ok {
		t.Fatalf("Missing forecast payload: %v", body)
	}
	points, _ := forecast["point_forecast"].([]interface{})
	if len(points) != 4 {
		t.Errorf("Expected 4 forecast points, got %d", len(points))
	}

	// Runs listing includes the analysis
	rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/runs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("List runs status = %d", rec.Code)
	}
	if int(body["count"].(float64)) != 1 {
		t.Errorf("run count = %v, want 1", body["count"])
	}
}

func TestUploadFile_CSV(t *testing.T) {
	handler := newTestApp().Router()

	var csv strings.Builder
	csv.WriteString("value\n")
	for _, v := range whiteNoise {
		fmt.Fprintf(&csv, "%.3f\n", v)
	}

	var buf bytes.Buffer
	form := newMultipart(t, &buf, "series.csv", csv.String())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/file", &buf)
	req.Header.Set("Content-Type", form)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, body %s", rec.Code, rec.Body.String())
	}
}

// newMultipart writes a single-file form into buf and returns the content type.
func newMultipart(t *testing.T, buf *bytes.Buffer, filename, content string) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return w.FormDataContentType()
}

func TestUploadData_EmptyPayload(t *testing.T) {
	rec, _ := doJSON(t, newTestApp().Router(), http.MethodPost, "/api/v1/upload/data",
		map[string]interface{}{"values": []float64{}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", rec.Code)
	}
}

func TestAnalyze_UnknownSeries(t *testing.T) {
	rec, _ := doJSON(t, newTestApp().Router(), http.MethodPost, "/api/v1/analysis/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestAnalyze_DegenerateSeries(t *testing.T) {
	handler := newTestApp().Router()

	constant := make([]float64, 40)
	for i := range constant {
		constant[i] = 5
	}
	_, body := doJSON(t, handler, http.MethodPost, "/api/v1/upload/data",
		map[string]interface{}{"values": constant})
	seriesID := body["series_id"].(string)

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/v1/analysis/"+seriesID, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422 for a constant series", rec.Code)
	}
}

func TestPredict_UnknownAnalysis(t *testing.T) {
	rec, _ := doJSON(t, newTestApp().Router(), http.MethodPost, "/api/v1/predict/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}
