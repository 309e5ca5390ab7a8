// Package ml implements the disease-progression inference pipeline: input
// validation, feature standardization and the fitted Lasso regression. The
// scaler statistics and regression weights are embedded as constants exported
// from the trained pipeline, so predictions match the original model without
// any scientific-computing dependency.
package ml

import "fmt"

// Parameters of the fitted StandardScaler + LassoCV pipeline, exported from
// the trained model. Index order matches featureFields.
var (
	featureMeans = [NumFeatures]float64{
		-1.44429466e-18,
		2.54321451e-18,
		-2.25592546e-16,
		-4.85408596e-17,
		-1.42859580e-17,
		3.89881064e-17,
		-6.02836031e-18,
		-1.78809958e-17,
		9.24348582e-17,
		1.35176953e-17,
	}

	featureScales = [NumFeatures]float64{
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
		0.04756515,
	}

	modelCoefficients = [NumFeatures]float64{
		-0.30892106,
		-11.22504613,
		24.81684888,
		15.27130382,
		-27.08540992,
		14.38623131,
		0.0,
		6.83504132,
		31.86497214,
		3.17904105,
	}
)

const modelIntercept = 152.13348416289594

// Model is the full inference pipeline. It is immutable after construction
// and safe for concurrent use: every call reads only its own inputs and the
// shared read-only parameters.
type Model struct {
	scaler ScalerParams
	params ModelParams
}

// NewModel builds a pipeline from explicit parameters. A zero scale would
// make standardization divide by zero, so it is rejected here once instead of
// being checked per prediction.
func NewModel(scaler ScalerParams, params ModelParams) (*Model, error) {
	for i, scale := range scaler.Scales {
		if scale == 0 {
			return nil, fmt.Errorf("scaler scale for %s is zero", featureFields[i])
		}
	}
	return &Model{scaler: scaler, params: params}, nil
}

// Load builds the pipeline from the embedded parameters. An error here is a
// configuration defect and should abort startup.
func Load() (*Model, error) {
	return NewModel(
		ScalerParams{Means: featureMeans, Scales: featureScales},
		ModelParams{Coefficients: modelCoefficients, Intercept: modelIntercept},
	)
}

// Predict runs the full pipeline on raw field values: validate, standardize,
// apply the regression. On validation failure the returned error is a
// *FieldError and no prediction is produced.
func (m *Model) Predict(values map[string]string) (float64, error) {
	vector, err := ParseFeatures(values)
	if err != nil {
		return 0, err
	}
	return m.PredictVector(vector), nil
}

// PredictVector runs the scaler and regression on an already-parsed vector.
func (m *Model) PredictVector(v FeatureVector) float64 {
	return m.params.Predict(m.scaler.Transform(v))
}

// Scaler returns the embedded scaler parameters.
func (m *Model) Scaler() ScalerParams {
	return m.scaler
}

// Params returns the embedded regression parameters.
func (m *Model) Params() ModelParams {
	return m.params
}
