package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Coerce turns any decoded JSON value (or Go scalar) into the string the pipeline cleans.
// nil becomes "", numbers use the shortest decimal form, bools print as true/false and
// objects or arrays are rendered as compact JSON. It never fails
func Coerce(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case json.RawMessage:
		return CoerceJSON(x)
	case fmt.Stringer:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// CoerceJSON coerces a raw JSON value: strings are unquoted, null is "", everything else
// keeps its compact JSON text
func CoerceJSON(raw []byte) string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	return Coerce(v)
}
