package domain

import (
	"errors"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// ErrInvalidSpecifier is returned when a version constraint cannot be parsed.
var ErrInvalidSpecifier = errors.New("invalid version specifier")

// PythonVersion is a parsed dot-separated interpreter version ("3.11.4").
// Trailing non-numeric segments (pre-release tags and the like) are ignored
// for comparison purposes; pave only needs ordering, not full PEP 440.
type PythonVersion []int

// ParsePythonVersion parses a version string into its numeric components.
func ParsePythonVersion(s string) (PythonVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, zerr.With(ErrInvalidSpecifier, "version", s)
	}
	parts := strings.Split(s, ".")
	v := make(PythonVersion, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			// Stop at the first non-numeric segment ("3.13.0rc1" -> 3.13).
			break
		}
		v = append(v, n)
	}
	if len(v) == 0 {
		return nil, zerr.With(ErrInvalidSpecifier, "version", s)
	}
	return v, nil
}

// Compare orders two versions component-wise, treating missing trailing
// components as zero ("3.11" == "3.11.0").
func (v PythonVersion) Compare(other PythonVersion) int {
	n := max(len(v), len(other))
	for i := range n {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (v PythonVersion) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Specifier is a parsed interpreter version constraint: a conjunction of
// comparison clauses such as ">=3.9,<4" or "==3.11.*".
type Specifier struct {
	clauses []clause
}

type clause struct {
	op       string
	version  PythonVersion
	wildcard bool // "==3.11.*" / "!=3.11.*"
}

// ParseSpecifier parses a comma-separated constraint string. An empty string
// parses to a specifier every version satisfies.
func ParseSpecifier(s string) (Specifier, error) {
	var spec Specifier
	for raw := range strings.SplitSeq(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		c, err := parseClause(raw)
		if err != nil {
			return Specifier{}, err
		}
		spec.clauses = append(spec.clauses, c...)
	}
	return spec, nil
}

var clauseOps = []string{"===", "~=", "==", "!=", ">=", "<=", ">", "<"}

func parseClause(raw string) ([]clause, error) {
	var op string
	for _, candidate := range clauseOps {
		if strings.HasPrefix(raw, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		// A bare version is treated as an exact match.
		op = "=="
	}

	body := strings.TrimSpace(strings.TrimPrefix(raw, op))
	wildcard := strings.HasSuffix(body, ".*")
	if wildcard {
		if op != "==" && op != "!=" {
			return nil, zerr.With(ErrInvalidSpecifier, "clause", raw)
		}
		body = strings.TrimSuffix(body, ".*")
	}

	v, err := ParsePythonVersion(body)
	if err != nil {
		return nil, zerr.With(ErrInvalidSpecifier, "clause", raw)
	}

	if op == "~=" {
		// "~=X.Y" is ">=X.Y,<X+1"; "~=X.Y.Z" is ">=X.Y.Z,<X.Y+1".
		if len(v) < 2 {
			return nil, zerr.With(ErrInvalidSpecifier, "clause", raw)
		}
		upper := make(PythonVersion, len(v)-1)
		copy(upper, v[:len(v)-1])
		upper[len(upper)-1]++
		return []clause{
			{op: ">=", version: v},
			{op: "<", version: upper},
		}, nil
	}

	if op == "===" {
		op = "=="
	}
	return []clause{{op: op, version: v, wildcard: wildcard}}, nil
}

// Matches reports whether the version satisfies every clause.
func (s Specifier) Matches(v PythonVersion) bool {
	for _, c := range s.clauses {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

func (c clause) matches(v PythonVersion) bool {
	if c.wildcard {
		prefix := len(c.version) >= 1 && v.truncate(len(c.version)).Compare(c.version) == 0
		if c.op == "==" {
			return prefix
		}
		return !prefix
	}

	cmp := v.Compare(c.version)
	switch c.op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	}
	return false
}

func (v PythonVersion) truncate(n int) PythonVersion {
	out := make(PythonVersion, n)
	for i := range n {
		if i < len(v) {
			out[i] = v[i]
		}
	}
	return out
}

// LowestSatisfying returns the smallest version in candidates that matches
// the specifier. The second return value is false when none match. Picking
// the lowest keeps resolution deterministic across machines with different
// installed interpreter sets.
func LowestSatisfying(spec Specifier, candidates []string) (string, bool) {
	var best PythonVersion
	var bestRaw string
	for _, raw := range candidates {
		v, err := ParsePythonVersion(raw)
		if err != nil {
			continue
		}
		if !spec.Matches(v) {
			continue
		}
		if best == nil || v.Compare(best) < 0 {
			best = v
			bestRaw = raw
		}
	}
	return bestRaw, best != nil
}
