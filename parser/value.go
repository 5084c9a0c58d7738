package parser

import (
	"math"
	"strconv"
	"strings"
)

// Kind 는 front-matter 값의 타입 태그다.
type Kind int

const (
	KindString Kind = iota
	KindStringList
	KindBool
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "list"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a tagged union of the value shapes a header line can hold.
// Raw keeps the trimmed source text for error messages and string coercion.
type Value struct {
	Kind Kind
	Raw  string
	Str  string
	List []string
	Bool bool
	Num  float64
}

// ParseValue classifies a raw header value:
//
//	[a, "b", c]  -> list (items trimmed, surrounding quotes stripped)
//	true / false -> bool
//	42, 3.5      -> number
//	anything else -> string (surrounding quotes stripped)
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	v := Value{Raw: raw}

	switch {
	case len(raw) >= 2 && strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		v.Kind = KindStringList
		// "[]" 는 빈 문자열 하나를 가진 목록이 된다. 빈 태그는 표시 시점에 걸러낸다.
		parts := strings.Split(raw[1:len(raw)-1], ",")
		v.List = make([]string, 0, len(parts))
		for _, p := range parts {
			v.List = append(v.List, unquote(strings.TrimSpace(p)))
		}
	case raw == "true" || raw == "false":
		v.Kind = KindBool
		v.Bool = raw == "true"
	default:
		if n, ok := parseNumber(raw); ok {
			v.Kind = KindNumber
			v.Num = n
			return v
		}
		v.Kind = KindString
		v.Str = unquote(raw)
	}
	return v
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
