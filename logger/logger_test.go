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

package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(42), "UNKNOWN"},
	}
	for _, test := range tests {
		if got := test.level.String(); got != test.expected {
			t.Errorf("Level(%d).String() = %q, want %q", test.level, got, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DEBUG},
		{" Info ", INFO},
		{"warning", WARN},
		{"WARN", WARN},
		{"error", ERROR},
		{"none", OFF},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", test.input, err)
		}
		if got != test.expected {
			t.Errorf("ParseLevel(%q) = %s, want %s", test.input, got, test.expected)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected an error for an unknown level name")
	}
}

func TestLevelFiltering(t *testing.T) {
	emit := map[Level]func(Logger){
		DEBUG: func(l Logger) { l.Debug("payload") },
		INFO:  func(l Logger) { l.Info("payload") },
		WARN:  func(l Logger) { l.Warn("payload") },
		ERROR: func(l Logger) { l.Error("payload") },
	}
	for _, configured := range []Level{DEBUG, INFO, WARN, ERROR, OFF} {
		for message, fn := range emit {
			var buf bytes.Buffer
			fn(NewLogger(configured, &buf))
			want := configured != OFF && message >= configured
			if got := buf.Len() > 0; got != want {
				t.Errorf("logger %s, message %s: wrote=%v, want %v", configured, message, got, want)
			}
		}
	}
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(INFO, &buf).Warn("dropped %d tokens", 3)
	line := buf.String()
	if !strings.HasPrefix(line, "[") || !strings.Contains(line, "] [WARN] dropped 3 tokens") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(DEBUG, &buf)
	l.SetLevel(ERROR)
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(DEBUG, &buf)
	parser := Named(root, "rsql")
	parser.Debug("statement %d", 1)
	if !strings.Contains(buf.String(), "[DEBUG] [rsql] statement 1") {
		t.Errorf("unexpected line %q", buf.String())
	}

	buf.Reset()
	Named(parser, "schema").Info("switch")
	if !strings.Contains(buf.String(), "[rsql.schema] switch") {
		t.Errorf("nested names should be joined, got %q", buf.String())
	}

	// levels are shared with the parent
	buf.Reset()
	parser.SetLevel(ERROR)
	root.Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected parent level to change, got %q", buf.String())
	}
}

func TestNamedDiscard(t *testing.T) {
	d := NewDiscardLogger()
	if Named(d, "x") != d {
		t.Error("naming a discard logger should return it unchanged")
	}
	d.Debug("a")
	d.Info("b")
	d.Warn("c")
	d.Error("d")
	d.SetLevel(DEBUG)
}

func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))
	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")
	for _, msg := range []string{"global debug", "global info", "global warn", "global error"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("expected %q in output %q", msg, buf.String())
		}
	}

	buf.Reset()
	Named(nil, "validator").Warn("from default")
	if !strings.Contains(buf.String(), "[validator] from default") {
		t.Errorf("nil parent should use the default logger, got %q", buf.String())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestConcurrentLogging(t *testing.T) {
	var out lockedBuffer
	l := Named(NewLogger(INFO, &out), "worker")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			l.Info("message from goroutine %d", id)
		}(i)
	}
	wg.Wait()

	if n := strings.Count(out.buf.String(), "message from goroutine"); n != 10 {
		t.Errorf("expected 10 messages, got %d", n)
	}
}
