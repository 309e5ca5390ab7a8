package db

import (
	"path/filepath"
	"testing"
	"time"

	"diapredict/ml"
)

func TestSaveAndQueryPredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Close()

	inputs := ml.FeatureVector{0.01, 0.02, 0.03, 0.04, 0.05, 0.06, 0.07, 0.08, 0.09, 0.1}
	id, err := SavePrediction(inputs, 151.5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero row id")
	}

	records, err := QueryPredictions(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Prediction != 151.5 {
		t.Fatalf("unexpected prediction: %v", records[0].Prediction)
	}
	if records[0].Inputs != inputs {
		t.Fatalf("unexpected inputs: %v", records[0].Inputs)
	}
}

func TestQueryPredictionsNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	if err := InitDB(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer Close()

	for i := 1; i <= 3; i++ {
		if _, err := SavePrediction(ml.FeatureVector{}, float64(i), time.Now()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := QueryPredictions(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Prediction != 3 || records[1].Prediction != 2 {
		t.Fatalf("expected newest first, got %v then %v", records[0].Prediction, records[1].Prediction)
	}
}

func TestQueriesRequireInit(t *testing.T) {
	if Ready() {
		t.Fatal("expected database to be closed")
	}
	if _, err := SavePrediction(ml.FeatureVector{}, 0, time.Now()); err == nil {
		t.Fatal("expected error before InitDB")
	}
	if _, err := QueryPredictions(1); err == nil {
		t.Fatal("expected error before InitDB")
	}
}
