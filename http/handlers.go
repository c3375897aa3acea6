package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const predictionPrefix = "Customer is likely to: "

// handlerFunc lets a handler return an error; any error becomes a generic 500.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (fn handlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := fn(w, r); err != nil {
		logger().Error("request failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func RegisterHandlers(mux *http.ServeMux) {
	mux.Handle("GET /{$}", handlerFunc(handleIndex))
	mux.Handle("POST /predict", handlerFunc(handlePredict))
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.Handle("GET /static/", staticHandler())
}

func handleIndex(w http.ResponseWriter, r *http.Request) error {
	return renderIndex(w, "")
}

func handlePredict(w http.ResponseWriter, r *http.Request) error {
	model := currentModel()
	if model == nil {
		return errors.New("model not loaded")
	}

	record, err := parseCustomerRecord(r)
	if err != nil {
		return err
	}

	prediction, err := model.Predict(r.Context(), record)
	if err != nil {
		return err
	}

	outcome := prediction.Outcome()
	currentMetrics().ObservePrediction(outcome)
	logger().Debug("prediction",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Int("label", prediction.Label),
		zap.Float64("confidence", prediction.Confidence),
	)
	return renderIndex(w, predictionPrefix+outcome)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if typed, ok := currentModel().(interface{ Type() string }); ok {
		status["model"] = typed.Type()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
