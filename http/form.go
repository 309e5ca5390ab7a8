package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"diapredict/ml"
)

type formField struct {
	Name  string
	Label string
	Value string
}

type indexData struct {
	Fields     []formField
	Prediction string
	Error      string
}

func formFields(submitted map[string]string) []formField {
	fields := make([]formField, 0, ml.NumFeatures)
	for _, name := range ml.FeatureNames() {
		fields = append(fields, formField{
			Name:  name,
			Label: ml.FeatureLabel(name),
			Value: submitted[name],
		})
	}
	return fields
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderIndex(w, indexData{Fields: formFields(nil)})
}

func handleIndexPost(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for field := range r.PostForm {
		values[field] = r.PostForm.Get(field)
	}

	data := indexData{Fields: formFields(values)}
	prediction, err := runPrediction(values)
	switch {
	case err == nil:
		printer := printerFor(r)
		data.Prediction = printer.Sprintf("%.2f", prediction)
	default:
		var fieldErr *ml.FieldError
		if errors.As(err, &fieldErr) {
			data.Error = fieldErr.Error()
		} else {
			logger.Error("prediction failed", zap.Error(err))
			data.Error = "the prediction could not be generated"
		}
	}

	renderIndex(w, data)
}

func renderIndex(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		logger.Error("failed to render page", zap.Error(err))
	}
}
