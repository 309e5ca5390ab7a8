package ml

import (
	"fmt"
	"math"
	"strconv"
)

// NumFeatures is the number of clinical measurements the model was fitted on.
const NumFeatures = 10

// FeatureVector holds the ten raw clinical measurements in model order.
type FeatureVector [NumFeatures]float64

var featureFields = [NumFeatures]string{
	"age",
	"sex",
	"bmi",
	"bp",
	"s1",
	"s2",
	"s3",
	"s4",
	"s5",
	"s6",
}

var featureLabels = map[string]string{
	"age": "Age",
	"sex": "Sex (1 = male, 0 = female)",
	"bmi": "Body Mass Index",
	"bp":  "Average Blood Pressure",
	"s1":  "Total Cholesterol",
	"s2":  "LDL Cholesterol",
	"s3":  "HDL Cholesterol",
	"s4":  "Triglycerides",
	"s5":  "Glucose Level",
	"s6":  "Insulin Level",
}

// FeatureNames returns the ten field names in model order. The order matters:
// it is the order the scaler statistics and coefficients were fitted in.
func FeatureNames() []string {
	names := make([]string, NumFeatures)
	copy(names, featureFields[:])
	return names
}

// FeatureLabel returns the human-readable label for a field name.
func FeatureLabel(name string) string {
	return featureLabels[name]
}

// ParseFeatures converts raw field values into a FeatureVector. It walks the
// ten fields in model order and fails on the first field that is absent or not
// a finite number. The returned error is always a *FieldError.
func ParseFeatures(values map[string]string) (FeatureVector, error) {
	var vector FeatureVector
	for i, field := range featureFields {
		raw, ok := values[field]
		if !ok {
			return FeatureVector{}, &FieldError{Field: field, Err: ErrMissingField}
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return FeatureVector{}, &FieldError{Field: field, Value: raw, Err: ErrInvalidNumber}
		}
		vector[i] = value
	}
	return vector, nil
}

// Slice returns the vector as a freshly allocated slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// String renders the vector as field=value pairs in model order.
func (v FeatureVector) String() string {
	s := ""
	for i, field := range featureFields {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%g", field, v[i])
	}
	return s
}
