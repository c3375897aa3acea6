package ml

import (
	"strconv"
	"strings"
)

// Column names of the training frame the model pipeline was fitted on.
const (
	ColumnTenure          = "tenure"
	ColumnMonthlyCharges  = "MonthlyCharges"
	ColumnTotalCharges    = "TotalCharges"
	ColumnGender          = "gender"
	ColumnInternetService = "InternetService"
	ColumnContract        = "Contract"
	ColumnPaymentMethod   = "PaymentMethod"
)

// CustomerRecord is the single-row input the model is asked to score.
type CustomerRecord struct {
	Tenure          float64 `json:"tenure"`
	MonthlyCharges  float64 `json:"MonthlyCharges"`
	TotalCharges    float64 `json:"TotalCharges"`
	Gender          string  `json:"gender"`
	InternetService string  `json:"InternetService"`
	Contract        string  `json:"Contract"`
	PaymentMethod   string  `json:"PaymentMethod"`
}

func NumericColumns() []string {
	return []string{ColumnTenure, ColumnMonthlyCharges, ColumnTotalCharges}
}

func CategoricalColumns() []string {
	return []string{ColumnGender, ColumnInternetService, ColumnContract, ColumnPaymentMethod}
}

func (r CustomerRecord) Numeric(column string) (float64, bool) {
	switch column {
	case ColumnTenure:
		return r.Tenure, true
	case ColumnMonthlyCharges:
		return r.MonthlyCharges, true
	case ColumnTotalCharges:
		return r.TotalCharges, true
	default:
		return 0, false
	}
}

func (r CustomerRecord) Category(column string) (string, bool) {
	switch column {
	case ColumnGender:
		return r.Gender, true
	case ColumnInternetService:
		return r.InternetService, true
	case ColumnContract:
		return r.Contract, true
	case ColumnPaymentMethod:
		return r.PaymentMethod, true
	default:
		return "", false
	}
}

// Key is a canonical encoding of the record, stable for identical inputs.
func (r CustomerRecord) Key() string {
	var b strings.Builder
	for _, column := range NumericColumns() {
		value, _ := r.Numeric(column)
		b.WriteString(strconv.FormatFloat(value, 'g', -1, 64))
		b.WriteByte(0x1f)
	}
	for _, column := range CategoricalColumns() {
		value, _ := r.Category(column)
		b.WriteString(normalizeCategory(value))
		b.WriteByte(0x1f)
	}
	return b.String()
}
