package ml

// ScalerParams holds the per-feature statistics of the fitted StandardScaler.
// Scales must be non-zero; NewModel checks that once at construction, the
// per-call paths assume it.
type ScalerParams struct {
	Means  [NumFeatures]float64
	Scales [NumFeatures]float64
}

// Transform standardizes a raw feature vector: out[i] = (v[i]-mean[i])/scale[i].
func (p ScalerParams) Transform(v FeatureVector) [NumFeatures]float64 {
	var out [NumFeatures]float64
	for i := range v {
		out[i] = (v[i] - p.Means[i]) / p.Scales[i]
	}
	return out
}

// Inverse undoes Transform: out[i] = scaled[i]*scale[i] + mean[i].
func (p ScalerParams) Inverse(scaled [NumFeatures]float64) FeatureVector {
	var out FeatureVector
	for i := range scaled {
		out[i] = scaled[i]*p.Scales[i] + p.Means[i]
	}
	return out
}
