package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"diapredict/db"
	"diapredict/metrics"
	"diapredict/ml"
)

var (
	model       *ml.Model
	logger      = zap.NewNop()
	resultCache *lru.Cache[string, float64]
)

// SetModel installs the inference pipeline used by the handlers.
func SetModel(m *ml.Model) {
	model = m
}

// SetLogger installs the package logger. Defaults to a nop logger.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// InitCache creates the bounded result cache. Size <= 0 disables caching.
func InitCache(size int) error {
	if size <= 0 {
		resultCache = nil
		return nil
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return err
	}
	resultCache = cache
	return nil
}

// RegisterHandlers registers all routes on the mux.
func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /", handleIndex)
	mux.HandleFunc("POST /", handleIndexPost)
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/predictions", handlePredictions)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// runPrediction validates, predicts and records one request. Identical inputs
// are served from the cache without writing a duplicate history row or
// re-broadcasting.
func runPrediction(values map[string]string) (float64, error) {
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	if model == nil {
		return 0, errors.New("model not initialized")
	}

	vector, err := ml.ParseFeatures(values)
	if err != nil {
		var fieldErr *ml.FieldError
		if errors.As(err, &fieldErr) {
			metrics.PredictionsTotal.WithLabelValues(fieldErr.Kind()).Inc()
		}
		return 0, err
	}

	key := vector.String()
	if resultCache != nil {
		if prediction, ok := resultCache.Get(key); ok {
			metrics.CacheTotal.WithLabelValues("hit").Inc()
			metrics.PredictionsTotal.WithLabelValues("ok").Inc()
			return prediction, nil
		}
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}

	prediction := model.PredictVector(vector)
	if resultCache != nil {
		resultCache.Add(key, prediction)
	}
	metrics.PredictionsTotal.WithLabelValues("ok").Inc()

	now := time.Now()
	if db.Ready() {
		if _, err := db.SavePrediction(vector, prediction, now); err != nil {
			logger.Warn("failed to save prediction", zap.Error(err))
		}
	}
	broadcastPrediction(PredictionEvent{
		Inputs:     vector.Slice(),
		Prediction: prediction,
		Timestamp:  now,
	})

	return prediction, nil
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	values, err := decodeJSONFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "request body must be a JSON object", "", "bad_request")
		return
	}

	prediction, err := runPrediction(values)
	if err != nil {
		var fieldErr *ml.FieldError
		if errors.As(err, &fieldErr) {
			respondError(w, http.StatusBadRequest, fieldErr.Error(), fieldErr.Field, fieldErr.Kind())
			return
		}
		logger.Error("prediction failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error", "", "internal")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"prediction": prediction})
}

func handlePredictions(w http.ResponseWriter, r *http.Request) {
	if !db.Ready() {
		respondError(w, http.StatusServiceUnavailable, "prediction history is disabled", "", "history_disabled")
		return
	}

	records, err := db.QueryPredictions(historyLimit(r.URL.Query().Get("limit")))
	if err != nil {
		logger.Error("failed to query predictions", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error", "", "internal")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	})
}

const maxHistoryLimit = 1000

// historyLimit parses the ?limit= parameter, defaulting to 20 and capping at
// maxHistoryLimit so an arbitrary value cannot reach the SQL LIMIT.
func historyLimit(raw string) int {
	limit := 20
	if raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return limit
}

// decodeJSONFields accepts field values either as JSON strings or as JSON
// numbers and normalizes them to strings for the validator.
func decodeJSONFields(r *http.Request) (map[string]string, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(body))
	for field, raw := range body {
		switch v := raw.(type) {
		case string:
			values[field] = v
		case json.Number:
			values[field] = v.String()
		default:
			values[field] = ""
		}
	}
	return values, nil
}

func respondError(w http.ResponseWriter, status int, message, field, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]string{"error": message, "kind": kind}
	if field != "" {
		payload["field"] = field
	}
	json.NewEncoder(w).Encode(payload)
}
