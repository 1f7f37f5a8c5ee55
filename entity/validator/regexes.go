package validator

import "regexp"

const (
	agentAddressRegexString = "^(\\[[0-9a-fA-F:.]+\\]|[^\\s/:\\[\\]]+)(:\\d{1,5})?$"
	tagRegexString          = "^\\S+$"
)

var (
	agentAddressRegex = regexp.MustCompile(agentAddressRegexString)
	tagRegex          = regexp.MustCompile(tagRegexString)
)
