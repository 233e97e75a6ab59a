// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const maxIDLength = 255

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-_\.]*$`)

// idValidator checks an actor identifier.
type idValidator struct {
	id string
}

var _ Validator = (*idValidator)(nil)

// NewIDValidator validates an actor identifier: it must be non-blank, at most
// 255 characters long, start with a letter or a digit and contain only
// letters, digits, hyphens, underscores and dots.
func NewIDValidator(id string) Validator {
	return &idValidator{id: id}
}

// Validate executes the validation
func (x *idValidator) Validate() error {
	if strings.TrimSpace(x.id) == "" {
		return errors.New("the [id] is required")
	}

	if len(x.id) > maxIDLength {
		return fmt.Errorf("the [id] %q is longer than %d characters", x.id[:16]+"...", maxIDLength)
	}

	return NewPatternValidator(idPattern, x.id, fmt.Errorf("the [id] %q contains invalid characters", x.id)).Validate()
}
