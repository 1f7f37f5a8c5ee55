package validator

import (
	"github.com/go-playground/validator/v10"
	"strings"
)

// command line must contain program name at least, arguments are split on whitespace
func isCommandLine(fl validator.FieldLevel) bool {
	return len(strings.Fields(fl.Field().String())) != 0
}

// agent address is joined after "http://", so scheme or path must not be included
func isAgentAddress(fl validator.FieldLevel) bool {
	return agentAddressRegex.MatchString(fl.Field().String())
}

func isTag(fl validator.FieldLevel) bool {
	return tagRegex.MatchString(fl.Field().String())
}
