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

// Package console implements the bridge's interactive prompts as a pure
// function over an injected Console interface, so tests can script answers
// deterministically instead of driving a real terminal.
//
// github.com/manifoldco/promptui was considered first, but its Prompt.Run
// reads raw terminal input and has no supported way to script deterministic
// answers from a bytes.Buffer in a test. So this package reimplements the
// same *shape* (bracketed default, re-prompt on invalid input, yes/no
// confirm) over a plain bufio.Scanner, which is trivially fed from any
// io.Reader in tests.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console is the narrow prompt interface every interactive component in the
// bridge depends on, never os.Stdin/os.Stdout directly.
type Console interface {
	// Ask prints a prompt with an optional bracketed default and returns the
	// trimmed line the user entered, or the default if they entered nothing.
	Ask(question, defaultVal string) (string, error)
	// Confirm asks a yes/no question, re-prompting until the answer is
	// empty (-> defaultYes), "y"/"yes" or "n"/"no" (case-insensitive).
	Confirm(question string, defaultYes bool) (bool, error)
}

// IO is the default Console, reading newline-terminated input from in and
// writing prompts to out.
type IO struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns an IO console.
func New(in io.Reader, out io.Writer) *IO {
	return &IO{in: bufio.NewScanner(in), out: out}
}

// Ask implements Console.
func (c *IO) Ask(question, defaultVal string) (string, error) {
	for {
		if defaultVal != "" {
			fmt.Fprintf(c.out, "%s [%s]: ", question, defaultVal)
		} else {
			fmt.Fprintf(c.out, "%s: ", question)
		}
		line, ok := c.readLine()
		if !ok {
			return "", io.EOF
		}
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}
}

// Confirm implements Console.
func (c *IO) Confirm(question string, defaultYes bool) (bool, error) {
	def := "n"
	if defaultYes {
		def = "y"
	}
	for {
		fmt.Fprintf(c.out, "%s [%s]: ", question, def)
		line, ok := c.readLine()
		if !ok {
			return false, io.EOF
		}
		switch strings.ToLower(line) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(c.out, "Please answer y or n.")
		}
	}
}

func (c *IO) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// AskValidated re-prompts until valid returns a nil error. Used for
// version/license entry loops.
func AskValidated(c Console, question, defaultVal string, valid func(string) error) (string, error) {
	for {
		answer, err := c.Ask(question, defaultVal)
		if err != nil {
			return "", err
		}
		if err := valid(answer); err != nil {
			fmt.Fprintf(stderrFallback(c), "%v\n", err)
			continue
		}
		return answer, nil
	}
}

// stderrFallback writes validation errors to the same writer as the console
// when possible, falling back to a discarded writer otherwise (keeps
// AskValidated usable against any Console implementation, including test
// fakes that don't expose an io.Writer).
func stderrFallback(c Console) io.Writer {
	if io, ok := c.(*IO); ok {
		return io.out
	}
	return discard{}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
