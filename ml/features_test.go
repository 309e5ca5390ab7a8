package ml

import (
	"errors"
	"testing"
)

func validInput() map[string]string {
	return map[string]string{
		"age": "0.03", "sex": "0.05", "bmi": "0.06", "bp": "0.02",
		"s1": "-0.04", "s2": "-0.03", "s3": "-0.04", "s4": "-0.002",
		"s5": "0.02", "s6": "-0.02",
	}
}

func TestParseFeaturesOrder(t *testing.T) {
	values := map[string]string{
		"age": "1", "sex": "2", "bmi": "3", "bp": "4",
		"s1": "5", "s2": "6", "s3": "7", "s4": "8", "s5": "9", "s6": "10",
	}
	vector, err := ParseFeatures(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range vector {
		if vector[i] != float64(i+1) {
			t.Fatalf("index %d: expected %d, got %f", i, i+1, vector[i])
		}
	}
}

func TestParseFeaturesPassesValuesThrough(t *testing.T) {
	values := validInput()
	values["bmi"] = "-273.15"
	values["s4"] = "1e6"
	vector, err := ParseFeatures(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector[2] != -273.15 {
		t.Fatalf("expected bmi passed through unclamped, got %f", vector[2])
	}
	if vector[7] != 1e6 {
		t.Fatalf("expected s4 passed through unclamped, got %f", vector[7])
	}
}

func TestParseFeaturesMissingField(t *testing.T) {
	values := validInput()
	delete(values, "bp")
	_, err := ParseFeatures(values)
	if err == nil {
		t.Fatal("expected error for missing field")
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fieldErr.Field != "bp" {
		t.Fatalf("expected field bp, got %q", fieldErr.Field)
	}
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", fieldErr.Err)
	}
}

func TestParseFeaturesInvalidNumber(t *testing.T) {
	cases := []string{"abc", "", "NaN", "Inf", "-Inf", "12.3.4"}
	for _, raw := range cases {
		values := validInput()
		values["s2"] = raw
		_, err := ParseFeatures(values)
		if err == nil {
			t.Fatalf("expected error for raw value %q", raw)
		}
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("expected *FieldError for %q, got %T", raw, err)
		}
		if fieldErr.Field != "s2" {
			t.Fatalf("expected field s2 for %q, got %q", raw, fieldErr.Field)
		}
		if fieldErr.Value != raw {
			t.Fatalf("expected raw value %q carried, got %q", raw, fieldErr.Value)
		}
		if !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("expected ErrInvalidNumber for %q, got %v", raw, fieldErr.Err)
		}
	}
}

func TestParseFeaturesReportsFirstFieldInOrder(t *testing.T) {
	values := validInput()
	values["sex"] = "abc"
	values["s5"] = "also bad"
	_, err := ParseFeatures(values)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fieldErr.Field != "sex" {
		t.Fatalf("expected first offending field sex, got %q", fieldErr.Field)
	}
}

func TestFeatureNames(t *testing.T) {
	names := FeatureNames()
	if len(names) != NumFeatures {
		t.Fatalf("expected %d names, got %d", NumFeatures, len(names))
	}
	if names[0] != "age" || names[9] != "s6" {
		t.Fatalf("unexpected order: %v", names)
	}
	for _, name := range names {
		if FeatureLabel(name) == "" {
			t.Fatalf("missing label for %s", name)
		}
	}
}
