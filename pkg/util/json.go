// pkg/util/json.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// UnmarshalJSON unmarshals the bytes into the given type but goes through
// some efforts to return useful error messages when the JSON is
// invalid...
func UnmarshalJSON[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := decodeOffset(serr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, err)

	case errors.As(err, &terr):
		line, char := decodeOffset(terr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, terr.Value, terr.Struct, terr.Field, terr.Type.String())

	default:
		return err
	}
}

// MarshalJSON returns the indented JSON encoding of v.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// DuplicateJSONKey records a key that appears more than once in the same
// JSON object; encoding/json silently keeps the last one.
type DuplicateJSONKey struct {
	Path string // Dot-separated keys of the enclosing objects
	Key  string
}

// FindDuplicateJSONKeys walks the JSON tokens in data and returns all of
// the keys that are repeated within an object.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))

	type level struct {
		object    bool
		seen      map[string]bool
		expectKey bool
		// Whether the container is the value of a key in its parent, in
		// which case that key is on the path until the container closes.
		keyed bool
	}
	var stack []level
	var path []string
	var dupes []DuplicateJSONKey

	// valueDone is called after each complete value: if it was the value
	// for a key, the key comes off the path and the next string is a key.
	valueDone := func() {
		if n := len(stack); n > 0 && stack[n-1].object {
			stack[n-1].expectKey = true
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				keyed := len(stack) > 0 && stack[len(stack)-1].object
				stack = append(stack, level{object: v == '{', seen: make(map[string]bool),
					expectKey: v == '{', keyed: keyed})
			case '}', ']':
				keyed := stack[len(stack)-1].keyed
				stack = stack[:len(stack)-1]
				if keyed {
					valueDone()
				}
			}

		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
				top := &stack[n-1]
				if top.seen[v] {
					dupes = append(dupes, DuplicateJSONKey{Path: strings.Join(path, "."), Key: v})
				}
				top.seen[v] = true
				top.expectKey = false
				path = append(path, v)
			} else {
				valueDone()
			}

		default:
			valueDone()
		}
	}

	return dupes
}

///////////////////////////////////////////////////////////////////////////

// CheckJSON checks whether the provided JSON is syntactically valid and
// then typechecks it with respect to the provided type T, reporting
// misspelled or unexpected object keys and repeated keys.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	var items any
	if err := UnmarshalJSON(contents, &items); err != nil {
		e.Error(err)
		return
	}

	for _, d := range FindDuplicateJSONKeys(contents) {
		if d.Path == "" {
			e.ErrorString("%q: key repeated", d.Key)
		} else {
			e.ErrorString("%s: %q: key repeated", d.Path, d.Key)
		}
	}

	ty := reflect.TypeOf((*T)(nil)).Elem()
	typeCheckJSON(items, ty, make(map[reflect.Type]map[string]reflect.Type), e)
}

func typeCheckJSON(json any, ty reflect.Type, structTypes map[reflect.Type]map[string]reflect.Type, e *ErrorLogger) {
	for ty.Kind() == reflect.Ptr {
		ty = ty.Elem()
	}

	mismatch := func() {
		e.ErrorString("unexpected data format provided for object: %s", reflect.TypeOf(json))
	}

	switch ty.Kind() {
	case reflect.Array, reflect.Slice:
		if array, ok := json.([]any); ok {
			for _, item := range array {
				typeCheckJSON(item, ty.Elem(), structTypes, e)
			}
		} else {
			mismatch()
		}

	case reflect.Map:
		if m, ok := json.(map[string]any); ok {
			for k, v := range m {
				e.Push(k)
				typeCheckJSON(v, ty.Elem(), structTypes, e)
				e.Pop()
			}
		} else {
			mismatch()
		}

	case reflect.Struct:
		items, ok := json.(map[string]any)
		if !ok {
			mismatch()
			return
		}

		// Map from JSON names to field types, computed once per struct
		// type.
		types, ok := structTypes[ty]
		if !ok {
			types = make(map[string]reflect.Type)
			for _, field := range reflect.VisibleFields(ty) {
				if jtag, ok := field.Tag.Lookup("json"); ok {
					name, _, _ := strings.Cut(jtag, ",")
					types[name] = field.Type
				}
			}
			structTypes[ty] = types
		}

		for item, values := range items {
			if fty, ok := types[item]; ok {
				e.Push(item)
				typeCheckJSON(values, fty, structTypes, e)
				e.Pop()
			} else {
				e.ErrorString("The entry %q is not an expected JSON object. Is it misspelled?", item)
			}
		}

	case reflect.Int, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		if _, ok := json.(float64); !ok {
			mismatch()
		}

	case reflect.String:
		if _, ok := json.(string); !ok {
			mismatch()
		}
	}
}
