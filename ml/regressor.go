package ml

// ModelParams holds the fitted Lasso regression weights over standardized
// features, plus the intercept.
type ModelParams struct {
	Coefficients [NumFeatures]float64
	Intercept    float64
}

// Predict computes intercept + sum(coef[i]*scaled[i]) in index order, so the
// floating-point summation is reproducible across calls.
func (p ModelParams) Predict(scaled [NumFeatures]float64) float64 {
	prediction := p.Intercept
	for i, coefficient := range p.Coefficients {
		prediction += coefficient * scaled[i]
	}
	return prediction
}
