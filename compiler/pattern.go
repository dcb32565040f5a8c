// Copyright 2025 The Dispatchkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"fmt"
	"strings"
)

// SegmentKind distinguishes literal path segments from named variables.
type SegmentKind uint8

const (
	// SegmentLiteral is a segment that must match the path token exactly.
	SegmentLiteral SegmentKind = iota

	// SegmentVariable is a segment that matches any single path token and
	// binds it under the segment's name.
	SegmentVariable
)

// MethodAny is the wildcard method marker. A pattern registered with
// MethodAny matches any request method for which no specific-method
// pattern exists at the same path.
const MethodAny = "*"

// Segment is one element of a route pattern: either a literal string or
// a named variable. Value holds the literal text for SegmentLiteral and
// the binding name for SegmentVariable.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Lit returns a literal segment.
func Lit(value string) Segment {
	return Segment{Kind: SegmentLiteral, Value: value}
}

// Var returns a variable segment with the given binding name.
func Var(name string) Segment {
	return Segment{Kind: SegmentVariable, Value: name}
}

// String renders the segment in pattern syntax (":name" for variables).
func (s Segment) String() string {
	if s.Kind == SegmentVariable {
		return ":" + s.Value
	}
	return s.Value
}

// Pattern is a route pattern: an HTTP method (or MethodAny) plus an
// ordered segment sequence. Identity is (method, segment sequence);
// equality and ordering operate on this structural form only.
type Pattern struct {
	Method   string
	Segments []Segment
}

// ParseSegments parses a path fragment like "/hotels/:id" into segments.
// A leading slash is optional, so a bare literal token such as "hotels"
// parses as a single-segment fragment. Tokens starting with ':' become
// variable segments. Variable names must be unique within one fragment.
//
// The empty string and "/" both parse to zero segments.
func ParseSegments(path string) ([]Segment, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}

	tokens := strings.Split(trimmed, "/")
	segments := make([]Segment, 0, len(tokens))
	var seen map[string]struct{}

	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, path)
		}
		if !strings.HasPrefix(tok, ":") {
			segments = append(segments, Lit(tok))
			continue
		}

		name := tok[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: unnamed variable in %q", ErrInvalidPattern, path)
		}
		if seen == nil {
			seen = make(map[string]struct{}, 4)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateVariable, name, path)
		}
		seen[name] = struct{}{}
		segments = append(segments, Var(name))
	}

	return segments, nil
}

// NewPattern parses path and returns a Pattern bound to method.
// Variable name uniqueness is validated across the whole pattern.
func NewPattern(method, path string) (Pattern, error) {
	segments, err := ParseSegments(path)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Method: method, Segments: segments}, nil
}

// Concat returns a new pattern whose segments are prefix ++ p.Segments.
// Variable names must remain unique across the combined sequence.
func (p Pattern) Concat(prefix []Segment) (Pattern, error) {
	combined := make([]Segment, 0, len(prefix)+len(p.Segments))
	combined = append(combined, prefix...)
	combined = append(combined, p.Segments...)

	seen := make(map[string]struct{}, len(combined))
	for _, seg := range combined {
		if seg.Kind != SegmentVariable {
			continue
		}
		if _, dup := seen[seg.Value]; dup {
			return Pattern{}, fmt.Errorf("%w: %q in %q", ErrDuplicateVariable, seg.Value, renderPath(combined))
		}
		seen[seg.Value] = struct{}{}
	}

	return Pattern{Method: p.Method, Segments: combined}, nil
}

// Path renders the segment sequence in canonical pattern syntax,
// e.g. "/hotels/:hotel-id/rooms/:id". The root pattern renders as "/".
func (p Pattern) Path() string {
	return renderPath(p.Segments)
}

// String renders the full pattern including the method, e.g. "GET /hotels/:id".
func (p Pattern) String() string {
	return p.Method + " " + p.Path()
}

// VarNames returns the variable binding names in positional order.
func (p Pattern) VarNames() []string {
	var names []string
	for _, seg := range p.Segments {
		if seg.Kind == SegmentVariable {
			names = append(names, seg.Value)
		}
	}
	return names
}

// IsStatic reports whether the pattern contains no variable segments.
func (p Pattern) IsStatic() bool {
	for _, seg := range p.Segments {
		if seg.Kind == SegmentVariable {
			return false
		}
	}
	return true
}

// Equal reports full structural identity: same method, same segment
// count, and per-position identical kind and value.
func (p Pattern) Equal(q Pattern) bool {
	if p.Method != q.Method || len(p.Segments) != len(q.Segments) {
		return false
	}
	for i, seg := range p.Segments {
		if seg != q.Segments[i] {
			return false
		}
	}
	return true
}

func renderPath(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}
