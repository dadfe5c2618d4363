package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tsinsight/adapters/ingest"
	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/models"
	"tsinsight/ports"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "tsinsight",
	})
}

// handleUploadFile accepts a multipart upload (CSV, Excel or JSON) and
// registers the parsed series for analysis.
func (a *App) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Server.MaxUploadSize)
	if err := r.ParseMultipartForm(a.cfg.Server.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	reader, err := ingest.ReaderFor(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := reader.Read(file, ports.ReadOptions{
		DateColumn:  r.FormValue("date_column"),
		ValueColumn: r.FormValue("value_column"),
		DateFormat:  r.FormValue("date_format"),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if data.Len() == 0 {
		writeError(w, http.StatusUnprocessableEntity, "uploaded file contains no observations")
		return
	}

	id := a.store.put(&data)
	a.log.Info("uploaded series %s (%d observations)", id, data.Len())
	writeJSON(w, http.StatusCreated, uploadResponse{
		SeriesID: id,
		Count:    data.Len(),
		Summary:  data.Describe(),
	})
}

// handleUploadData accepts a JSON body: either a bare array of numbers or
// an object with "values" and optional "timestamps".
func (a *App) handleUploadData(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.cfg.Server.MaxUploadSize)

	data, err := (&ingest.JSONReader{}).Read(r.Body, ports.ReadOptions{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if data.Len() == 0 {
		writeError(w, http.StatusUnprocessableEntity, "payload contains no observations")
		return
	}

	id := a.store.put(&data)
	writeJSON(w, http.StatusCreated, uploadResponse{
		SeriesID: id,
		Count:    data.Len(),
		Summary:  data.Describe(),
	})
}

// handleAnalyze runs the identification pipeline against an uploaded series.
// The request body may override individual engine settings.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	seriesID := core.SeriesID(chi.URLParam(r, "seriesID"))
	data, ok := a.store.get(seriesID)
	if !ok {
		writeError(w, http.StatusNotFound, "series not found: "+seriesID.String())
		return
	}

	cfg := a.cfg.Engine
	if r.ContentLength != 0 {
		var overrides configOverrides
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		overrides.apply(&cfg)
	}

	report, err := a.service.Analyze(r.Context(), *data, cfg)
	if err != nil {
		a.log.Warn("analysis of series %s failed: %v", seriesID, err)
		writeAnalysisError(w, err)
		return
	}

	run := models.NewAnalysisRun(seriesID, *data, report)
	if err := a.runs.Save(r.Context(), run); err != nil {
		a.log.Error("failed to save run %s: %v", run.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to persist analysis")
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		AnalysisID: run.ID,
		SeriesID:   seriesID,
		Report:     report,
	})
}

func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := core.AnalysisID(chi.URLParam(r, "analysisID"))
	run, err := a.runs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found: "+id.String())
			return
		}
		a.log.Error("failed to load run %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		AnalysisID: run.ID,
		SeriesID:   run.SeriesID,
		Report:     run.Report,
	})
}

// handlePredict forecasts from the best model of a stored analysis.
func (a *App) handlePredict(w http.ResponseWriter, r *http.Request) {
	id := core.AnalysisID(chi.URLParam(r, "analysisID"))
	run, err := a.runs.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found: "+id.String())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load analysis")
		return
	}

	req := predictRequest{Steps: 10, Alpha: run.Report.Config.Alpha}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	best := run.Report.Best()
	if best == nil {
		writeError(w, http.StatusUnprocessableEntity, "analysis produced no usable model")
		return
	}

	forecast, err := a.service.Forecast(run.Series, best.Estimation, req.Steps, req.Alpha)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		AnalysisID: run.ID,
		Order:      best.Order,
		Forecast:   forecast,
	})
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	runs, err := a.runs.List(r.Context(), limit)
	if err != nil {
		a.log.Error("failed to list runs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	items := make([]runSummary, 0, len(runs))
	for _, run := range runs {
		item := runSummary{
			AnalysisID: run.ID,
			SeriesID:   run.SeriesID,
			CreatedAt:  run.CreatedAt,
		}
		if best := run.Report.Best(); best != nil {
			item.BestOrder = &best.Order
			item.AIC = best.Fit.AIC
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  items,
		"count": len(items),
	})
}

// writeAnalysisError maps engine errors onto HTTP statuses. Validation and
// data-quality failures are client errors; everything else is a 500.
func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInsufficientData),
		errors.Is(err, core.ErrDegenerateSeries),
		errors.Is(err, core.ErrInvalidConfig),
		errors.Is(err, core.ErrInvalidHorizon),
		errors.Is(err, core.ErrAllCandidatesFailed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

type configOverrides struct {
	AutoDiff          *bool    `json:"auto_diff"`
	MaxP              *int     `json:"max_p"`
	MaxQ              *int     `json:"max_q"`
	MaxD              *int     `json:"max_d"`
	NModels           *int     `json:"n_models"`
	SignificanceLevel *float64 `json:"significance_level"`
	Alpha             *float64 `json:"alpha"`
}

func (o configOverrides) apply(cfg *arima.Config) {
	if o.AutoDiff != nil {
		cfg.AutoDiff = *o.AutoDiff
	}
	if o.MaxP != nil {
		cfg.MaxP = *o.MaxP
	}
	if o.MaxQ != nil {
		cfg.MaxQ = *o.MaxQ
	}
	if o.MaxD != nil {
		cfg.MaxD = *o.MaxD
	}
	if o.NModels != nil {
		cfg.NModels = *o.NModels
	}
	if o.SignificanceLevel != nil {
		cfg.SignificanceLevel = *o.SignificanceLevel
	}
	if o.Alpha != nil {
		cfg.Alpha = *o.Alpha
	}
}
