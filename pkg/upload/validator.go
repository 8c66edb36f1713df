package upload

import (
	"strings"
	"unicode/utf8"
)

// FieldError is one form-level validation failure, same item shape the server
// uses for its error lists.
type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Param+" "+fe.Msg)
	}

	return strings.Join(parts, "; ")
}

func requireField(location, field, value string) *FieldError {
	if utf8.RuneCountInString(strings.TrimSpace(value)) == 0 {
		return &FieldError{Location: location, Param: field, Value: value, Msg: "is required"}
	}

	return nil
}

func mergeErrors(errors ...*FieldError) []*FieldError {
	res := make([]*FieldError, 0, len(errors))
	for _, err := range errors {
		if err != nil {
			res = append(res, err)
		}
	}

	return res
}
