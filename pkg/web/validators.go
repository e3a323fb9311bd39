package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator func(valueToTest int64) bool

func newComparisonValidator(valueInClosure int64, compareFn func(argValue, closedValue int64) bool) ParamValidator {
	return func(argValue int64) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte(valToCompareAgainst int64) ParamValidator {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue int64) bool {
		return argValue >= closedValue
	})
}

// between returns a ParamValidator that checks if the argument lies within [lo, hi].
func between(lo, hi int64) ParamValidator {
	atLeast := gte(lo)
	return func(argValue int64) bool {
		return atLeast(argValue) && argValue <= hi
	}
}

// ParseQueryGte reads an optional integer query parameter that must be >= minValue.
// def is returned when the parameter is absent.
func ParseQueryGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, minValue, def int64) (int32, bool) {
	return parseValidate(r, w, logger, key, def, gte(minValue))
}

// ParseQueryBetween reads an optional integer query parameter within [lo, hi].
// def is returned when the parameter is absent.
func ParseQueryBetween(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, lo, hi, def int64) (int32, bool) {
	return parseValidate(r, w, logger, key, def, between(lo, hi))
}

func parseValidate(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, def int64, pValidator ParamValidator) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return int32(def), true
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !pValidator(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}
