package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Operator is an advanced search comparison
type Operator string

const (
	OpEquals         Operator = "EQUALS"
	OpNotEquals      Operator = "NOT_EQUALS"
	OpGreaterThan    Operator = "GREATER_THAN"
	OpLessThan       Operator = "LESS_THAN"
	OpIn             Operator = "IN"
	OpNotIn          Operator = "NOT_IN"
	OpContainsAny    Operator = "CONTAINS_ANY"
	OpNotContainsAny Operator = "NOT_CONTAINS_ANY"
	OpContainsAll    Operator = "CONTAINS_ALL"
	OpNotContainsAll Operator = "NOT_CONTAINS_ALL"
)

// Operators is the allow-set accepted by advanced search.
//
// The API narrows this per field type (lists take only the CONTAINS family,
// booleans only EQUALS/NOT_EQUALS, datetimes neither CONTAINS nor IN). That
// narrowing is left to the server and is not checked here.
var Operators = []Operator{
	OpEquals, OpNotEquals,
	OpGreaterThan, OpLessThan,
	OpIn, OpNotIn,
	OpContainsAny, OpNotContainsAny,
	OpContainsAll, OpNotContainsAll,
}

const filterKeys = "field, operator, value"

// Filter is one field/operator/value condition
type Filter struct {
	Field    string   `json:"field" validate:"required"`
	Operator Operator `json:"operator" validate:"required,oneof=EQUALS NOT_EQUALS GREATER_THAN LESS_THAN IN NOT_IN CONTAINS_ANY NOT_CONTAINS_ANY CONTAINS_ALL NOT_CONTAINS_ALL"`
	Value    any      `json:"value"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateFilters checks that filters is non-empty, that every condition has
// all three parts and that every operator is in Operators.
func ValidateFilters(filters []Filter) error {
	if len(filters) == 0 {
		return invalidQuery("at least one filter condition must be provided")
	}

	for i, f := range filters {
		if reason := validateFilter(f); reason != "" {
			return invalidQuery("filter %d: %s", i, reason)
		}
	}
	return nil
}

// validateFilter returns an empty string for a valid condition.
// Missing parts are reported before a bad operator.
func validateFilter(f Filter) string {
	err := validate.Struct(f)

	var verrs validator.ValidationErrors
	if err != nil && !errors.As(err, &verrs) {
		return err.Error()
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return "each filter must contain all required parameters: " + filterKeys
		}
	}
	if f.Value == nil {
		return "each filter must contain all required parameters: " + filterKeys
	}
	if len(verrs) > 0 {
		return fmt.Sprintf("invalid operator %q, must be one of: %s", f.Operator, OperatorList())
	}
	return ""
}

// ParseFilters converts decoded JSON into filters. It fails when an element is
// not an object, lacks field/operator/value, or has a non-string field or operator.
// Operator membership is left to ValidateFilters.
func ParseFilters(raw []any) ([]Filter, error) {
	if len(raw) == 0 {
		return nil, invalidQuery("at least one filter condition must be provided")
	}

	filters := make([]Filter, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, invalidQuery("filter %d: each filter must be an object", i)
		}

		field, hasField := m["field"]
		op, hasOp := m["operator"]
		value, hasValue := m["value"]
		if !hasField || !hasOp || !hasValue {
			return nil, invalidQuery("filter %d: each filter must contain all required parameters: %s", i, filterKeys)
		}

		fieldName, ok := field.(string)
		if !ok {
			return nil, invalidQuery("filter %d: field must be a string", i)
		}
		opName, ok := op.(string)
		if !ok {
			return nil, invalidQuery("filter %d: operator must be a string", i)
		}

		filters = append(filters, Filter{
			Field:    fieldName,
			Operator: Operator(opName),
			Value:    value,
		})
	}
	return filters, nil
}

// OperatorList renders Operators comma separated
func OperatorList() string {
	names := make([]string, 0, len(Operators))
	for _, op := range Operators {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

// String renders f as "field OPERATOR value"
func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Field, f.Operator, f.Value)
}

// DescribeFilters joins filters with " AND "
func DescribeFilters(filters []Filter) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " AND ")
}
