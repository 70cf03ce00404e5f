/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sqlfront

import (
	"io"

	"github.com/rulego/sqlfront/logger"
)

// Option changes the default behaviour of an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and the parsers it creates.
//
// Example:
//
//	engine := sqlfront.New(sqlfront.WithLogger(logger.NewLogger(logger.DEBUG, os.Stderr)))
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithLogLevel sets the level of the engine's logger. Apply it after
// WithLogger when both are given.
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		e.log.SetLevel(level)
	}
}

// WithLogOutput logs to output at level.
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) {
		e.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog turns logging off.
func WithDiscardLog() Option {
	return func(e *Engine) {
		e.log = logger.NewDiscardLogger()
	}
}

// WithValidation enables or disables the validator run by ParseQuery.
func WithValidation(enabled bool) Option {
	return func(e *Engine) {
		e.validate = enabled
	}
}

// WithReadOnly controls whether statement-modifying keywords are rejected.
func WithReadOnly(readOnly bool) Option {
	return func(e *Engine) {
		e.validator.ReadOnly = readOnly
	}
}

// WithMaxQueryLength limits the query length in bytes. 0 disables the check.
func WithMaxQueryLength(n int) Option {
	return func(e *Engine) {
		e.validator.MaxLength = n
	}
}

// WithMaxNestingDepth limits parenthesis depth in the raw query. 0 disables
// the check.
func WithMaxNestingDepth(n int) Option {
	return func(e *Engine) {
		e.validator.MaxNestingDepth = n
	}
}

// WithMaxJoins limits the number of JOIN and APPLY clauses. 0 disables the
// check.
func WithMaxJoins(n int) Option {
	return func(e *Engine) {
		e.validator.MaxJoins = n
	}
}

// WithMaxParseDepth bounds recursion in the query and schema parsers.
func WithMaxParseDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}
