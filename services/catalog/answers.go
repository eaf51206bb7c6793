package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"bookable/models"
	"bookable/utils"
)

// VerifyAnswers checks a client's submitted answers against the option
// tree. Any violation fails the whole submission; the returned error is a
// validationFailure carrying the first failing path. A nil error means the
// submission is valid.
func VerifyAnswers(t *models.OptionTree, answers []models.Answer) error {
	flat := Flatten(t)

	// Answered paths together with every ancestor prefix: answering
	// "Wash.Wax" also covers the required "Wash".
	covered := make(map[string]bool)
	seen := make(map[string]bool)

	for _, a := range answers {
		if seen[a.Path] {
			return utils.ValidationFailure(a.Path, "path answered more than once")
		}
		seen[a.Path] = true

		fields, ok := flat[a.Path]
		if !ok {
			return utils.ValidationFailure(a.Path, "no option exists at this path")
		}
		node, _ := FindNode(t, a.Path)
		if err := checkAnswerType(t, node, fields, a); err != nil {
			return err
		}

		segments := strings.Split(a.Path, PathSeparator)
		for i := range segments {
			covered[strings.Join(segments[:i+1], PathSeparator)] = true
		}
	}

	// Every required node, and every root, must be covered.
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		required := flat[p].IsRequired || !strings.Contains(p, PathSeparator)
		if required && !covered[p] {
			return utils.ValidationFailure(p, "required option was not answered")
		}
	}
	return nil
}

// checkAnswerType matches the answer's runtime type against the node's
// question type.
func checkAnswerType(t *models.OptionTree, node *models.OptionNode, fields models.FlatNode, a models.Answer) error {
	switch fields.QuestionType {
	case models.QuestionNumber:
		if !isNumeric(a.Value) {
			return utils.ValidationFailure(a.Path, "answer must be a number")
		}
	case models.QuestionWrittenResponse:
		if _, ok := a.Value.(string); !ok {
			return utils.ValidationFailure(a.Path, "answer must be text")
		}
	case models.QuestionConditional:
		if _, ok := a.Value.(bool); !ok {
			return utils.ValidationFailure(a.Path, "answer must be a boolean")
		}
	case models.QuestionSingleSelect:
		v, ok := a.Value.(string)
		if !ok {
			return utils.ValidationFailure(a.Path, "answer must be a single selected option")
		}
		if len(node.Children) > 0 && !isChildName(t, node, v) {
			return utils.ValidationFailure(a.Path, fmt.Sprintf("%q is not an option at this path", v))
		}
	case models.QuestionMultiSelect:
		values, ok := asSlice(a.Value)
		if !ok {
			return utils.ValidationFailure(a.Path, "answer must be a collection of selected options")
		}
		if len(values) < fields.MinSelection {
			return utils.ValidationFailure(a.Path,
				fmt.Sprintf("at least %d selections are required", fields.MinSelection))
		}
		if len(node.Children) > 0 {
			for _, v := range values {
				s, ok := v.(string)
				if !ok || !isChildName(t, node, s) {
					return utils.ValidationFailure(a.Path, "selection is not an option at this path")
				}
			}
		}
	default:
		return utils.ValidationFailure(a.Path, fmt.Sprintf("option has unknown question type %q", fields.QuestionType))
	}
	return nil
}

func isChildName(t *models.OptionTree, node *models.OptionNode, name string) bool {
	for _, cid := range node.Children {
		for i := range t.Nodes {
			if t.Nodes[i].ID == cid && t.Nodes[i].Name == name {
				return true
			}
		}
	}
	return false
}

// isNumeric accepts the numeric shapes JSON decoding can produce.
func isNumeric(v any) bool {
	switch n := v.(type) {
	case int, int32, int64, float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}
