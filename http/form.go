package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"churnpredict/ml"
)

var errMissingField = errors.New("missing form field")

// parseCustomerRecord maps the posted form onto a model record. All seven
// fields must be present; only the numeric ones are checked beyond that.
func parseCustomerRecord(r *http.Request) (ml.CustomerRecord, error) {
	if err := r.ParseForm(); err != nil {
		return ml.CustomerRecord{}, fmt.Errorf("parse form: %w", err)
	}

	var (
		record ml.CustomerRecord
		err    error
	)
	if record.Tenure, err = parseNumber(r, "tenure"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.MonthlyCharges, err = parseNumber(r, "monthly_charges"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.TotalCharges, err = parseNumber(r, "total_charges"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.Gender, err = requiredField(r, "gender"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.InternetService, err = requiredField(r, "internet_service"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.Contract, err = requiredField(r, "contract"); err != nil {
		return ml.CustomerRecord{}, err
	}
	if record.PaymentMethod, err = requiredField(r, "payment_method"); err != nil {
		return ml.CustomerRecord{}, err
	}
	return record, nil
}

func requiredField(r *http.Request, field string) (string, error) {
	if !r.PostForm.Has(field) {
		return "", fmt.Errorf("field %s: %w", field, errMissingField)
	}
	return r.PostForm.Get(field), nil
}

// parseNumber accepts surrounding whitespace and digit-group underscores
// ("1_000") and rejects non-finite values.
func parseNumber(r *http.Request, field string) (float64, error) {
	if !r.PostForm.Has(field) {
		return 0, fmt.Errorf("field %s: %w", field, errMissingField)
	}
	raw, err := stripDigitUnderscores(strings.TrimSpace(r.PostForm.Get(field)))
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("field %s: non-finite value %q", field, raw)
	}
	return value, nil
}

func stripDigitUnderscores(s string) (string, error) {
	if !strings.Contains(s, "_") {
		return s, nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", fmt.Errorf("invalid underscore in %q", s)
		}
	}
	return strings.ReplaceAll(s, "_", ""), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
