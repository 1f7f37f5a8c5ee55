package validator

import (
	"github.com/go-playground/validator/v10"
	"log"
)

var entityValidator *validator.Validate

func init() {
	entityValidator = validator.New()

	if err := entityValidator.RegisterValidation("command_line", isCommandLine); err != nil { log.Fatal(err) } // 문자열 전용
	if err := entityValidator.RegisterValidation("agent_address", isAgentAddress); err != nil { log.Fatal(err) } // 문자열 전용
	if err := entityValidator.RegisterValidation("tag", isTag); err != nil { log.Fatal(err) } // 문자열 전용
}

func New() *validator.Validate {
	return entityValidator
}
