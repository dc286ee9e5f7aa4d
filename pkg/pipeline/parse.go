package pipeline

import (
	"encoding/json"
	"slices"
	"sort"
)

func objectFields(data json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, newParseError("expected a JSON object")
	}
	return fields, nil
}

func rejectUnknown(fields map[string]json.RawMessage, allowed ...string) error {
	var unknown []string
	for key := range fields {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return parseErrorf("unknown field %q", unknown[0])
}

func decodeStep(data json.RawMessage) (Step, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, err
	}
	rawName, ok := fields["name"]
	if !ok {
		return nil, newParseError(`missing step discriminator "name"`)
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return nil, newParseError(`step discriminator "name" must be a string`)
	}
	switch name {
	case "domain":
		return decodeDomainStep(fields)
	case "filter":
		return decodeFilterStep(fields)
	case "aggregate":
		return decodeAggregateStep(fields)
	default:
		return nil, parseErrorf("unknown step %q", name)
	}
}

func decodeDomainStep(fields map[string]json.RawMessage) (Step, error) {
	if err := rejectUnknown(fields, "name", "domain", "table"); err != nil {
		return nil, err
	}
	raw, ok := fields["domain"]
	if !ok {
		return nil, newParseError(`domain step requires a "domain" field`)
	}
	step := DomainStep{Table: true}
	if err := json.Unmarshal(raw, &step.Source); err != nil {
		return nil, newParseError(`"domain" must be a string`)
	}
	if raw, ok := fields["table"]; ok {
		if err := json.Unmarshal(raw, &step.Table); err != nil {
			return nil, newParseError(`"table" must be a boolean`)
		}
	}
	return step, nil
}

func decodeFilterStep(fields map[string]json.RawMessage) (Step, error) {
	if err := rejectUnknown(fields, "name", "condition"); err != nil {
		return nil, err
	}
	raw, ok := fields["condition"]
	if !ok {
		return nil, newParseError(`filter step requires a "condition" field`)
	}
	condition, err := decodeCondition(raw)
	if err != nil {
		return nil, err
	}
	return FilterStep{Condition: condition}, nil
}

func decodeAggregateStep(fields map[string]json.RawMessage) (Step, error) {
	if err := rejectUnknown(fields, "name", "on", "aggregations", "keepOriginalGranularity"); err != nil {
		return nil, err
	}
	var step AggregateStep
	if raw, ok := fields["on"]; ok {
		if err := json.Unmarshal(raw, &step.On); err != nil {
			return nil, newParseError(`"on" must be an array of column names`)
		}
	}
	raw, ok := fields["aggregations"]
	if !ok {
		return nil, newParseError(`aggregate step requires an "aggregations" field`)
	}
	var rawAggregations []json.RawMessage
	if err := json.Unmarshal(raw, &rawAggregations); err != nil {
		return nil, newParseError(`"aggregations" must be an array`)
	}
	if len(rawAggregations) == 0 {
		return nil, newParseError("aggregate step requires at least one aggregation")
	}
	step.Aggregations = make([]Aggregation, 0, len(rawAggregations))
	for i, rawAggregation := range rawAggregations {
		aggregation, err := decodeAggregation(rawAggregation)
		if err != nil {
			return nil, parseErrorf("aggregation %d: %v", i, err)
		}
		step.Aggregations = append(step.Aggregations, aggregation)
	}
	if raw, ok := fields["keepOriginalGranularity"]; ok {
		if err := json.Unmarshal(raw, &step.KeepOriginalGranularity); err != nil {
			return nil, newParseError(`"keepOriginalGranularity" must be a boolean`)
		}
	}
	return step, nil
}

func decodeAggregation(data json.RawMessage) (Aggregation, error) {
	fields, err := objectFields(data)
	if err != nil {
		return Aggregation{}, err
	}
	if err := rejectUnknown(fields, "columns", "newcolumns", "aggfunction"); err != nil {
		return Aggregation{}, err
	}
	var aggregation Aggregation
	raw, ok := fields["columns"]
	if !ok {
		return Aggregation{}, newParseError(`aggregation requires a "columns" field`)
	}
	if err := json.Unmarshal(raw, &aggregation.Columns); err != nil {
		return Aggregation{}, newParseError(`"columns" must be an array of column names`)
	}
	raw, ok = fields["newcolumns"]
	if !ok {
		return Aggregation{}, newParseError(`aggregation requires a "newcolumns" field`)
	}
	if err := json.Unmarshal(raw, &aggregation.NewColumns); err != nil {
		return Aggregation{}, newParseError(`"newcolumns" must be an array of column names`)
	}
	if len(aggregation.Columns) == 0 {
		return Aggregation{}, newParseError("aggregation requires at least one column")
	}
	if len(aggregation.Columns) != len(aggregation.NewColumns) {
		return Aggregation{}, parseErrorf(`"columns" and "newcolumns" must have the same length (%d != %d)`,
			len(aggregation.Columns), len(aggregation.NewColumns))
	}
	raw, ok = fields["aggfunction"]
	if !ok {
		return Aggregation{}, newParseError(`aggregation requires an "aggfunction" field`)
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return Aggregation{}, newParseError(`"aggfunction" must be a string`)
	}
	fn, err := parseAggregationFunc(name)
	if err != nil {
		return Aggregation{}, err
	}
	aggregation.Function = fn
	return aggregation, nil
}

func decodeCondition(data json.RawMessage) (Condition, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, newParseError("condition must be a JSON object")
	}
	rawAnd, hasAnd := fields["and"]
	rawOr, hasOr := fields["or"]
	switch {
	case hasAnd && hasOr:
		return nil, newParseError(`ambiguous condition: carries both "and" and "or"`)
	case hasAnd:
		if len(fields) > 1 {
			return nil, newParseError(`ambiguous condition: "and" must be the only field`)
		}
		operands, err := decodeOperands(rawAnd, "and")
		if err != nil {
			return nil, err
		}
		return And{Operands: operands}, nil
	case hasOr:
		if len(fields) > 1 {
			return nil, newParseError(`ambiguous condition: "or" must be the only field`)
		}
		operands, err := decodeOperands(rawOr, "or")
		if err != nil {
			return nil, err
		}
		return Or{Operands: operands}, nil
	default:
		return decodeLeafCondition(fields)
	}
}

func decodeOperands(data json.RawMessage, kind string) ([]Condition, error) {
	var rawOperands []json.RawMessage
	if err := json.Unmarshal(data, &rawOperands); err != nil {
		return nil, parseErrorf("%q must be an array of conditions", kind)
	}
	if len(rawOperands) == 0 {
		return nil, parseErrorf("empty %q condition", kind)
	}
	operands := make([]Condition, 0, len(rawOperands))
	for i, raw := range rawOperands {
		operand, err := decodeCondition(raw)
		if err != nil {
			return nil, parseErrorf("%s operand %d: %v", kind, i, err)
		}
		operands = append(operands, operand)
	}
	return operands, nil
}

func decodeLeafCondition(fields map[string]json.RawMessage) (Condition, error) {
	raw, ok := fields["column"]
	if !ok {
		return nil, newParseError(`condition requires a "column" field`)
	}
	var column Column
	if err := json.Unmarshal(raw, &column); err != nil {
		return nil, newParseError(`"column" must be a string`)
	}
	raw, ok = fields["operator"]
	if !ok {
		return nil, newParseError(`condition requires an "operator" field`)
	}
	var operator string
	if err := json.Unmarshal(raw, &operator); err != nil {
		return nil, newParseError(`"operator" must be a string`)
	}

	rawValue, hasValue := fields["value"]

	switch operator {
	case string(OpEq), string(OpNe), string(OpGt), string(OpGte), string(OpLt), string(OpLte):
		if err := rejectUnknown(fields, "column", "operator", "value"); err != nil {
			return nil, err
		}
		if !hasValue {
			return nil, parseErrorf(`operator %q requires a "value" field`, operator)
		}
		var value Value
		if err := json.Unmarshal(rawValue, &value); err != nil {
			return nil, err
		}
		return Comparison{Column: column, Operator: ComparisonOperator(operator), Value: value}, nil
	case string(OpIsNull), string(OpNotNull):
		if err := rejectUnknown(fields, "column", "operator"); err != nil {
			return nil, err
		}
		return Nullability{Column: column, Operator: NullabilityOperator(operator)}, nil
	case string(OpIn), string(OpNin):
		if err := rejectUnknown(fields, "column", "operator", "value"); err != nil {
			return nil, err
		}
		if !hasValue {
			return nil, parseErrorf(`operator %q requires a "value" field`, operator)
		}
		var values []Value
		if err := json.Unmarshal(rawValue, &values); err != nil {
			if IsParseError(err) {
				return nil, err
			}
			return nil, parseErrorf(`operator %q requires an array "value"`, operator)
		}
		return Inclusion{Column: column, Operator: InclusionOperator(operator), Values: values}, nil
	case string(OpMatches), string(OpNotMatches):
		if err := rejectUnknown(fields, "column", "operator", "value"); err != nil {
			return nil, err
		}
		if !hasValue {
			return nil, parseErrorf(`operator %q requires a "value" field`, operator)
		}
		var pattern string
		if err := json.Unmarshal(rawValue, &pattern); err != nil {
			return nil, parseErrorf(`operator %q requires a string "value"`, operator)
		}
		return Matches{Column: column, Operator: MatchesOperator(operator), Pattern: pattern}, nil
	default:
		return nil, parseErrorf("unknown operator %q", operator)
	}
}
