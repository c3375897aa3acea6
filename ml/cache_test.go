package ml

import (
	"context"
	"errors"
	"testing"
)

type countingModel struct {
	calls int
	err   error
}

func (m *countingModel) Predict(ctx context.Context, record CustomerRecord) (Prediction, error) {
	m.calls++
	if m.err != nil {
		return Prediction{}, m.err
	}
	if record.Contract == "Month-to-month" {
		return Prediction{Label: ChurnLabel, Confidence: 0.8}, nil
	}
	return Prediction{Label: 0, Confidence: 0.9}, nil
}

func TestCachedModelMemoizes(t *testing.T) {
	inner := &countingModel{}
	cached, err := NewCachedModel(inner, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		prediction, err := cached.Predict(context.Background(), churner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !prediction.Churn() {
			t.Fatalf("expected churn, got %+v", prediction)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", inner.calls)
	}

	if _, err := cached.Predict(context.Background(), loyal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 || cached.Len() != 2 {
		t.Fatalf("expected 2 calls and 2 entries, got %d and %d", inner.calls, cached.Len())
	}
}

func TestCachedModelSkipsErrors(t *testing.T) {
	inner := &countingModel{err: errors.New("boom")}
	cached, err := NewCachedModel(inner, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := cached.Predict(context.Background(), churner); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 || cached.Len() != 0 {
		t.Fatalf("errors must not be cached: calls=%d len=%d", inner.calls, cached.Len())
	}
}

func TestCachedModelType(t *testing.T) {
	model, err := LoadModel("", "testdata/churn_tree.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cached, err := NewCachedModel(model, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.Type() != ModelTypeDecisionTree {
		t.Fatalf("unexpected type %q", cached.Type())
	}
	if _, err := NewCachedModel(model, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestRecordKey(t *testing.T) {
	if churner.Key() != churner.Key() {
		t.Fatal("key must be stable")
	}
	if churner.Key() == loyal.Key() {
		t.Fatal("distinct records must have distinct keys")
	}
}
