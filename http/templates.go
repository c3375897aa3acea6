package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type selectField struct {
	Name    string
	Label   string
	Options []string
}

type indexPage struct {
	Fields         []selectField
	PredictionText string
}

// Option lists mirror the categories seen in the training data.
var formFields = []selectField{
	{Name: "gender", Label: "Gender", Options: []string{"Female", "Male"}},
	{Name: "internet_service", Label: "Internet Service", Options: []string{"DSL", "Fiber optic", "No"}},
	{Name: "contract", Label: "Contract", Options: []string{"Month-to-month", "One year", "Two year"}},
	{Name: "payment_method", Label: "Payment Method", Options: []string{
		"Electronic check",
		"Mailed check",
		"Bank transfer (automatic)",
		"Credit card (automatic)",
	}},
}

func renderIndex(w http.ResponseWriter, predictionText string) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{Fields: formFields, PredictionText: predictionText}); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
