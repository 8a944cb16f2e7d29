// engine/conditions.go
package engine

import (
	"go.uber.org/zap"

	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
)

// CustomConditionHandler evaluates a condition of type "custom". Handlers are
// registered by requirement key via WithCustomCondition.
type CustomConditionHandler func(condition model.AccessCondition, status model.UserConditionStatus) bool

// ConditionOutcome is the result of evaluating one condition or a condition
// list. On failure Message and BlockType carry the failing condition's
// denial reason and blast radius.
type ConditionOutcome struct {
	Passed    bool
	Message   string
	BlockType model.BlockType
}

type conditionEvaluator struct {
	custom map[string]CustomConditionHandler
}

func newConditionEvaluator() *conditionEvaluator {
	return &conditionEvaluator{custom: make(map[string]CustomConditionHandler)}
}

// evaluateAll runs conditions in list order with AND semantics,
// short-circuiting on the first failure.
func (ce *conditionEvaluator) evaluateAll(conditions []model.AccessCondition, status model.UserConditionStatus) ConditionOutcome {
	for _, condition := range conditions {
		if !ce.evaluate(condition, status) {
			return ConditionOutcome{
				Passed:    false,
				Message:   condition.Message,
				BlockType: condition.BlockType,
			}
		}
	}
	return ConditionOutcome{Passed: true, BlockType: model.BlockNone}
}

// evaluate computes pass/fail for a single condition. The policy is
// fail-closed: an unresolvable requirement key, a type mismatch, or a custom
// condition without a registered handler all evaluate to failed, never to
// skipped. Missing or malformed user data must not silently grant access.
func (ce *conditionEvaluator) evaluate(condition model.AccessCondition, status model.UserConditionStatus) bool {
	var actual interface{}

	switch condition.Type {
	case model.ConditionTraining:
		actual = status.Training.Completed.Contains(condition.Requirement)
	case model.ConditionCertification:
		actual = status.Certification.Active.Contains(condition.Requirement)
	case model.ConditionCompliance:
		value, ok := status.Compliance.Field(condition.Requirement)
		if !ok {
			logger.Warn("Unknown compliance requirement, failing closed",
				zap.String("requirement", condition.Requirement))
			return false
		}
		actual = value
	case model.ConditionPerformance:
		value, ok := status.Performance.Field(condition.Requirement)
		if !ok {
			logger.Warn("Unknown performance requirement, failing closed",
				zap.String("requirement", condition.Requirement))
			return false
		}
		actual = value
	case model.ConditionCustom:
		handler, ok := ce.custom[condition.Requirement]
		if !ok {
			logger.Warn("No handler for custom condition, failing closed",
				zap.String("requirement", condition.Requirement))
			return false
		}
		return handler(condition, status)
	default:
		logger.Warn("Unknown condition type, failing closed",
			zap.String("type", string(condition.Type)))
		return false
	}

	return applyOperator(condition.Operator, actual, condition.Value)
}

func applyOperator(op model.Operator, actual, expected interface{}) bool {
	switch op {
	case model.OperatorEquals:
		return valuesEqual(actual, expected)
	case model.OperatorNotEquals:
		return !valuesEqual(actual, expected)
	case model.OperatorGreaterThan:
		a, aok := toFloat(actual)
		b, bok := toFloat(expected)
		return aok && bok && a > b
	case model.OperatorLessThan:
		a, aok := toFloat(actual)
		b, bok := toFloat(expected)
		return aok && bok && a < b
	case model.OperatorContains:
		return listContains(actual, expected)
	}
	return false
}

// valuesEqual compares with numeric normalization so a catalog literal 90
// matches a snapshot value of 90.0 (JSON decodes all numbers as float64).
func valuesEqual(actual, expected interface{}) bool {
	if a, aok := toFloat(actual); aok {
		if b, bok := toFloat(expected); bok {
			return a == b
		}
		return false
	}
	switch a := actual.(type) {
	case bool:
		b, ok := expected.(bool)
		return ok && a == b
	case string:
		b, ok := expected.(string)
		return ok && a == b
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// listContains requires actual to be list-typed and checks membership of the
// expected value. Anything else fails closed.
func listContains(actual, expected interface{}) bool {
	switch list := actual.(type) {
	case []string:
		want, ok := expected.(string)
		if !ok {
			return false
		}
		for _, v := range list {
			if v == want {
				return true
			}
		}
	case model.StringSet:
		want, ok := expected.(string)
		return ok && list.Contains(want)
	case []interface{}:
		for _, v := range list {
			if valuesEqual(v, expected) {
				return true
			}
		}
	}
	return false
}
