package ecode

import (
	"fmt"
)

const (
	emptyMsg       = "empty"
	requiredMsg    = "required"
	invalidMsg     = "invalid"
	failedMsg      = "failed"
	notExistMsg    = "does not exist"
	tooLargeMsg    = "too large"
	unsupportedMsg = "not supported"
)

// FieldIsBlank returns field blank message
func FieldIsBlank(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldIsTooLarge returns field too large message
func FieldIsTooLarge(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], tooLargeMsg)
	}
	return tooLargeMsg
}

// Failed returns failed message
func Failed(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], failedMsg)
	}
	return failedMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// NotSupported returns not supported message
func NotSupported(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], unsupportedMsg)
	}
	return unsupportedMsg
}
