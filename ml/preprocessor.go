package ml

import (
	"errors"
	"fmt"
	"math"
)

type NumericColumn struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
}

type CategoricalColumn struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

// Preprocessor is the fitted column transformer of the model pipeline:
// standardized numeric columns followed by one-hot encoded categorical blocks.
type Preprocessor struct {
	Numeric     []NumericColumn     `json:"numeric"`
	Categorical []CategoricalColumn `json:"categorical"`

	index []map[string]int
	width int
}

// Prepare validates the fitted columns and builds the category lookup tables.
// It must be called before Transform.
func (p *Preprocessor) Prepare() error {
	if len(p.Numeric) == 0 && len(p.Categorical) == 0 {
		return errors.New("preprocessor has no columns")
	}

	seen := make(map[string]bool)
	width := 0
	for _, col := range p.Numeric {
		if _, ok := (CustomerRecord{}).Numeric(col.Column); !ok {
			return fmt.Errorf("unknown numeric column %q", col.Column)
		}
		if seen[col.Column] {
			return fmt.Errorf("duplicate column %q", col.Column)
		}
		seen[col.Column] = true
		width++
	}

	index := make([]map[string]int, len(p.Categorical))
	for i, col := range p.Categorical {
		if _, ok := (CustomerRecord{}).Category(col.Column); !ok {
			return fmt.Errorf("unknown categorical column %q", col.Column)
		}
		if seen[col.Column] {
			return fmt.Errorf("duplicate column %q", col.Column)
		}
		seen[col.Column] = true
		if len(col.Categories) == 0 {
			return fmt.Errorf("column %q has no categories", col.Column)
		}
		lookup := make(map[string]int, len(col.Categories))
		for j, category := range col.Categories {
			key := normalizeCategory(category)
			if _, dup := lookup[key]; dup {
				return fmt.Errorf("column %q: duplicate category %q", col.Column, category)
			}
			lookup[key] = j
		}
		index[i] = lookup
		width += len(col.Categories)
	}

	p.index = index
	p.width = width
	return nil
}

// Width is the length of the encoded feature vector.
func (p *Preprocessor) Width() int {
	return p.width
}

func (p *Preprocessor) Transform(record CustomerRecord) ([]float64, error) {
	if p.index == nil {
		return nil, errors.New("preprocessor not prepared")
	}

	vector := make([]float64, p.width)
	offset := 0
	for _, col := range p.Numeric {
		value, _ := record.Numeric(col.Column)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("column %s: input contains NaN or infinity", col.Column)
		}
		vector[offset] = StandardizeFeature(value, col.Mean, col.Scale)
		offset++
	}
	for i, col := range p.Categorical {
		value, _ := record.Category(col.Column)
		slot, ok := p.index[i][normalizeCategory(value)]
		if !ok {
			slot = -1
		}
		OneHot(vector[offset:offset+len(col.Categories)], slot)
		offset += len(col.Categories)
	}
	return vector, nil
}

// FeatureNames lists the encoded feature names in vector order.
func (p *Preprocessor) FeatureNames() []string {
	names := make([]string, 0, p.width)
	for _, col := range p.Numeric {
		names = append(names, col.Column)
	}
	for _, col := range p.Categorical {
		for _, category := range col.Categories {
			names = append(names, col.Column+"_"+category)
		}
	}
	return names
}
