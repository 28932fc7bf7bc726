package cache

import "encoding/json"

// Serialize encodes a fetched value to its cache transport form. Structured
// records become their JSON field map, slices of records become a JSON array,
// and plain values their JSON literal. The output round-trips through
// Deserialize for every type the repositories produce.
func Serialize(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Deserialize parses a cached transport string back into T. The type
// parameter is the static deserialization target for the operation that
// produced the entry, so each cached operation declares its result shape at
// registration instead of being introspected at call time. A payload that is
// structurally incompatible with T yields a *DecodeError.
func Deserialize[T any](s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, &DecodeError{Err: err}
	}
	return v, nil
}
