package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"bookable/models"
	"bookable/utils"
)

func failingPath(t *testing.T, err error) string {
	t.Helper()
	if utils.CodeOf(err) != utils.CodeValidationFailure {
		t.Fatalf("expected validationFailure, got %v", err)
	}
	var e *utils.Error
	if !errors.As(err, &e) {
		t.Fatalf("not a structured error: %v", err)
	}
	return e.Details
}

func TestVerifyAnswers_WashExample(t *testing.T) {
	tree := washTree(t)

	tests := []struct {
		name     string
		answers  []models.Answer
		wantPath string
	}{
		{
			name: "valid number and conditional",
			answers: []models.Answer{
				{Path: "Wash", Value: float64(2)},
				{Path: "Wash.Wax", Value: true},
			},
		},
		{
			name: "json.Number is numeric",
			answers: []models.Answer{
				{Path: "Wash", Value: json.Number("3")},
			},
		},
		{
			name: "type mismatch on number",
			answers: []models.Answer{
				{Path: "Wash", Value: "two"},
			},
			wantPath: "Wash",
		},
		{
			name: "unknown path",
			answers: []models.Answer{
				{Path: "Wash", Value: float64(1)},
				{Path: "Wash.Undercoat", Value: true},
			},
			wantPath: "Wash.Undercoat",
		},
		{
			name: "duplicate path",
			answers: []models.Answer{
				{Path: "Wash", Value: float64(1)},
				{Path: "Wash", Value: float64(2)},
			},
			wantPath: "Wash",
		},
		{
			name:     "required root missing",
			answers:  nil,
			wantPath: "Wash",
		},
		{
			name: "answering a child covers the required parent",
			answers: []models.Answer{
				{Path: "Wash.Wax", Value: true},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyAnswers(tree, tc.answers)
			if tc.wantPath == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if got := failingPath(t, err); got != tc.wantPath {
				t.Fatalf("failing path = %q, want %q", got, tc.wantPath)
			}
		})
	}
}

func TestVerifyAnswers_Selects(t *testing.T) {
	tree := &models.OptionTree{}
	mustCreate(t, tree, "", models.OptionNode{
		Name: "Size", IsRequired: true,
		ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionSingleSelect,
	})
	for _, n := range []string{"Small", "Large"} {
		mustCreate(t, tree, "Size", models.OptionNode{
			Name: n, ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionConditional,
		})
	}
	mustCreate(t, tree, "", models.OptionNode{
		Name: "Extras", IsRequired: true, MinSelection: 2,
		ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionMultiSelect,
	})
	for _, n := range []string{"Mats", "Trim", "Tires"} {
		mustCreate(t, tree, "Extras", models.OptionNode{
			Name: n, ChargeType: models.ChargePriceOnly, QuestionType: models.QuestionConditional,
		})
	}

	tests := []struct {
		name     string
		answers  []models.Answer
		wantPath string
	}{
		{
			name: "valid selections",
			answers: []models.Answer{
				{Path: "Size", Value: "Small"},
				{Path: "Extras", Value: []any{"Mats", "Trim"}},
			},
		},
		{
			name: "single select must name a child",
			answers: []models.Answer{
				{Path: "Size", Value: "Medium"},
				{Path: "Extras", Value: []any{"Mats", "Trim"}},
			},
			wantPath: "Size",
		},
		{
			name: "multi select below minimum",
			answers: []models.Answer{
				{Path: "Size", Value: "Large"},
				{Path: "Extras", Value: []any{"Mats"}},
			},
			wantPath: "Extras",
		},
		{
			name: "multi select with unknown option",
			answers: []models.Answer{
				{Path: "Size", Value: "Large"},
				{Path: "Extras", Value: []any{"Mats", "Spoiler"}},
			},
			wantPath: "Extras",
		},
		{
			name: "multi select must be a collection",
			answers: []models.Answer{
				{Path: "Size", Value: "Large"},
				{Path: "Extras", Value: "Mats"},
			},
			wantPath: "Extras",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifyAnswers(tree, tc.answers)
			if tc.wantPath == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if got := failingPath(t, err); got != tc.wantPath {
				t.Fatalf("failing path = %q, want %q", got, tc.wantPath)
			}
		})
	}
}
