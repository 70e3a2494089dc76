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

package bridgeerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := IOf(cause, "fetching %s", "widget-1.0.jar")

	assert.Equal(t, "IOFailure: fetching widget-1.0.jar: connection reset", err.Error())
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := Cyclef("org.demo:a:1.0")

	assert.Equal(t, "CycleError: dependency cycle detected at org.demo:a:1.0", err.Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindIO, "writing file", cause)

	require.ErrorIs(t, err, cause)
}

func TestKindHelpersTagTheRightKind(t *testing.T) {
	cases := []struct {
		err  *Error
		kind Kind
	}{
		{Argumentf("bad arg %s", "x"), KindArgument},
		{Resolutionf("no version"), KindResolution},
		{Validationf("not semver"), KindValidation},
		{Cyclef("a"), KindCycle},
		{IOf(errors.New("x"), "msg"), KindIO},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, c.err.Kind)
	}
}
