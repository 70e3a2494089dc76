// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bridgeerr defines the bridge's error taxonomy.
package bridgeerr

import "fmt"

// Kind classifies a bridge error for exit-code and retry-policy purposes.
type Kind string

// The fixed error kinds the bridge can raise.
const (
	KindArgument   Kind = "ArgumentError"
	KindIO         Kind = "IOFailure"
	KindPOMParse   Kind = "POMParseError"
	KindCycle      Kind = "CycleError"
	KindResolution Kind = "ResolutionError"
	KindValidation Kind = "ValidationError"
)

// Error wraps an underlying cause with a Kind, so main can choose an exit
// code/retry policy by inspecting the chain with errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an Error of the given kind around an existing cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Argumentf builds a KindArgument error.
func Argumentf(format string, args ...any) *Error {
	return New(KindArgument, fmt.Sprintf(format, args...))
}

// IOf builds a KindIO error.
func IOf(err error, format string, args ...any) *Error {
	return Wrap(KindIO, fmt.Sprintf(format, args...), err)
}

// Cyclef builds a KindCycle error naming the offending coordinate.
func Cyclef(coord string) *Error {
	return New(KindCycle, fmt.Sprintf("dependency cycle detected at %s", coord))
}

// Resolutionf builds a KindResolution error.
func Resolutionf(format string, args ...any) *Error {
	return New(KindResolution, fmt.Sprintf(format, args...))
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}
