// Package domain defines core entities and value objects for termsim.
//
// The domain layer is independent of infrastructure concerns. Result is the
// uniform contract every interpreter command returns; both front ends (REPL
// and HTTP) consume it unchanged.
package domain

import "fmt"

// ResultKind classifies how a command finished. It is never serialized;
// front ends only see the success flag and output text.
type ResultKind string

const (
	KindOK             ResultKind = "ok"
	KindUsage          ResultKind = "usage"
	KindOSFailure      ResultKind = "os_failure"
	KindUnknownCommand ResultKind = "unknown_command"
	KindGenericFailure ResultKind = "generic_failure"
)

// Result is returned by every command.
type Result struct {
	Success bool       `json:"success"`
	Output  string     `json:"output"`
	Exit    bool       `json:"exit,omitempty"`
	Kind    ResultKind `json:"-"`
}

// OK builds a successful result.
func OK(output string) Result {
	return Result{Success: true, Output: output, Kind: KindOK}
}

// UsageError reports a missing required operand for verb.
func UsageError(verb string) Result {
	return Result{Output: fmt.Sprintf("%s: missing operand", verb), Kind: KindUsage}
}

// OSFailure reports an anticipated filesystem or host failure.
func OSFailure(message string) Result {
	return Result{Output: message, Kind: KindOSFailure}
}

// UnknownCommand reports a verb missing from the dispatch table.
func UnknownCommand(verb string) Result {
	return Result{Output: fmt.Sprintf("Unknown command: %s", verb), Kind: KindUnknownCommand}
}

// GenericFailure wraps any error a handler did not anticipate.
func GenericFailure(message string) Result {
	return Result{Output: fmt.Sprintf("Error: %s", message), Kind: KindGenericFailure}
}

// ExitResult is the only result that carries Exit=true.
func ExitResult() Result {
	return Result{Success: true, Output: "exit", Exit: true, Kind: KindOK}
}

// IsFailure reports whether the result represents any error tier.
func (r Result) IsFailure() bool {
	return !r.Success
}
