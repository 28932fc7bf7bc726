package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// keyNamespace tags every derived key so entries from this service are
// recognizable (and flushable) inside a shared keyspace.
const keyNamespace = "pokeapi"

// NamedArgs carries named arguments into Key. Entries are rendered sorted by
// name, so the calling order at the call site never changes the derived key.
type NamedArgs map[string]any

// Key derives a stable, collision-resistant cache key for an operation
// invocation. The prefix identifies the operation; args are its arguments in
// positional order, with any NamedArgs value rendered as a sorted name=value
// list. The rendered parts are joined with ":" and hashed with SHA-256, so
// argument values never leak special characters into the keyspace and key
// length stays fixed.
//
// Identical prefix and arguments always produce the identical key, including
// calls where NamedArgs entries were written in a different order. No
// arguments at all is valid: the prefix alone is hashed.
func Key(prefix string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, prefix)
	for _, arg := range args {
		parts = append(parts, renderValue(arg))
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return keyNamespace + ":" + hex.EncodeToString(sum[:])
}

// KeyNamespace returns the namespace tag prepended to every derived key.
func KeyNamespace() string {
	return keyNamespace
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case NamedArgs:
		return renderNamed(val)
	case []string:
		return "[" + strings.Join(val, ",") + "]"
	case []any:
		rendered := make([]string, len(val))
		for i, item := range val {
			rendered[i] = renderValue(item)
		}
		return "[" + strings.Join(rendered, ",") + "]"
	case fmt.Stringer:
		return val.String()
	default:
		// fmt renders maps with sorted keys, so this stays deterministic
		// for the remaining compound types.
		return fmt.Sprintf("%v", val)
	}
}

func renderNamed(named NamedArgs) string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + renderValue(named[name])
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
