package notifyclient

import (
	"bytes"
	"encoding/json"
	"unicode"
	"unicode/utf8"
)

// normalizeKeys rewrites every object key in raw so its first rune is
// lower case. Servers that serialize with PascalCase and servers that use
// camelCase then decode the same way. When both spellings of a key are
// present the camelCase one wins.
func normalizeKeys(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(lowerKeys(v))
}

func lowerKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if lowerFirst(k) == k {
				out[k] = lowerKeys(val)
			}
		}
		for k, val := range t {
			lk := lowerFirst(k)
			if lk == k {
				continue
			}
			if _, exists := out[lk]; !exists {
				out[lk] = lowerKeys(val)
			}
		}
		return out
	case []any:
		for i := range t {
			t[i] = lowerKeys(t[i])
		}
		return t
	default:
		return v
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
