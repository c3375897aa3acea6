package ml

import (
	"math"
	"reflect"
	"testing"
)

func testPreprocessor() *Preprocessor {
	return &Preprocessor{
		Numeric: []NumericColumn{
			{Column: ColumnTenure, Mean: 10, Scale: 5},
			{Column: ColumnMonthlyCharges, Mean: 50, Scale: 0},
		},
		Categorical: []CategoricalColumn{
			{Column: ColumnContract, Categories: []string{"Month-to-month", "One year", "Two year"}},
			{Column: ColumnGender, Categories: []string{"Female", "Male"}},
		},
	}
}

func TestPreprocessorTransform(t *testing.T) {
	p := testPreprocessor()
	if err := p.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Width() != 7 {
		t.Fatalf("expected width 7, got %d", p.Width())
	}

	vector, err := p.Transform(CustomerRecord{
		Tenure:         20,
		MonthlyCharges: 70,
		Gender:         "Male",
		Contract:       "Two year",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 20, 0, 0, 1, 0, 1}
	if !reflect.DeepEqual(vector, want) {
		t.Fatalf("expected %v, got %v", want, vector)
	}
}

func TestPreprocessorUnknownCategory(t *testing.T) {
	p := testPreprocessor()
	if err := p.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vector, err := p.Transform(CustomerRecord{Tenure: 10, MonthlyCharges: 50, Contract: "Weekly", Gender: "Female"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 0, 0, 0, 0, 1, 0}
	if !reflect.DeepEqual(vector, want) {
		t.Fatalf("expected %v, got %v", want, vector)
	}
}

func TestPreprocessorNormalizesCategories(t *testing.T) {
	p := &Preprocessor{Categorical: []CategoricalColumn{
		{Column: ColumnPaymentMethod, Categories: []string{"Caf\u00e9 card", "Cash"}},
	}}
	if err := p.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vector, err := p.Transform(CustomerRecord{PaymentMethod: "Cafe\u0301 card"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(vector, []float64{1, 0}) {
		t.Fatalf("expected decomposed form to match, got %v", vector)
	}
}

func TestPreprocessorPrepareErrors(t *testing.T) {
	cases := map[string]*Preprocessor{
		"empty":          {},
		"unknown column": {Numeric: []NumericColumn{{Column: "SeniorCitizen"}}},
		"duplicate":      {Numeric: []NumericColumn{{Column: ColumnTenure}, {Column: ColumnTenure}}},
		"no categories":  {Categorical: []CategoricalColumn{{Column: ColumnGender}}},
		"dup category":   {Categorical: []CategoricalColumn{{Column: ColumnGender, Categories: []string{"Male", "Male"}}}},
		"wrong kind":     {Categorical: []CategoricalColumn{{Column: ColumnTenure, Categories: []string{"1"}}}},
	}
	for name, p := range cases {
		if err := p.Prepare(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestPreprocessorTransformUnprepared(t *testing.T) {
	if _, err := testPreprocessor().Transform(CustomerRecord{}); err == nil {
		t.Fatal("expected error before Prepare")
	}
}

func TestPreprocessorFeatureNames(t *testing.T) {
	p := testPreprocessor()
	if err := p.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := p.FeatureNames()
	if len(names) != p.Width() {
		t.Fatalf("expected %d names, got %d", p.Width(), len(names))
	}
	if names[0] != ColumnTenure || names[4] != "Contract_Two year" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestPreprocessorRejectsNonFinite(t *testing.T) {
	p := testPreprocessor()
	if err := p.Prepare(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := p.Transform(CustomerRecord{Tenure: value, Contract: "One year", Gender: "Male"}); err == nil {
			t.Fatalf("expected error for %v", value)
		}
		if _, err := p.Transform(CustomerRecord{MonthlyCharges: value, Contract: "One year", Gender: "Male"}); err == nil {
			t.Fatalf("expected error for monthly charges %v", value)
		}
	}
}
