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

package rsql

import (
	"github.com/rulego/sqlfront/logger"
)

// DefaultMaxDepth bounds expression recursion so hostile input returns an
// error instead of exhausting the stack.
const DefaultMaxDepth = 4096

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parser debug output.
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = logger.Named(l, "rsql")
		}
	}
}

// WithMaxDepth sets the maximum expression nesting depth. Values below 1
// keep the default.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}
