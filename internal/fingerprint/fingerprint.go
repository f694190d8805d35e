// Package fingerprint produces stable content digests for duplicate
// detection. Two values with the same semantic content hash identically no
// matter how their map keys were ordered; sequence order is significant.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"sort"
	"strconv"
)

// Hash returns the hex-encoded SHA-1 digest of v's canonical form. The value
// is normalized through JSON first, then walked recursively: sequences
// element by element in original order, maps in sorted key order with each
// key name fed to the digest before its value, scalars by their canonical
// string form. SHA-1 is fine here; the digest detects exact duplicates and
// is not a security boundary.
func Hash(v any) (string, error) {
	normalized, err := normalize(v)
	if err != nil {
		return "", fmt.Errorf("normalize value: %w", err)
	}

	digest := sha1.New()
	if err := walk(digest, normalized); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// normalize reduces any Go value to the tagged JSON variants walk handles:
// []any, map[string]any, string, float64, bool and nil.
func normalize(v any) (any, error) {
	switch v.(type) {
	case nil, string, float64, bool, []any, map[string]any:
		return v, nil
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func walk(digest hash.Hash, v any) error {
	switch value := v.(type) {
	case []any:
		for _, element := range value {
			element, err := normalize(element)
			if err != nil {
				return err
			}
			if err := walk(digest, element); err != nil {
				return err
			}
		}
		return nil

	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			digest.Write([]byte(key))
			element, err := normalize(value[key])
			if err != nil {
				return err
			}
			if err := walk(digest, element); err != nil {
				return err
			}
		}
		return nil

	case string:
		digest.Write([]byte(value))
		return nil

	case float64:
		digest.Write([]byte(strconv.FormatFloat(value, 'f', -1, 64)))
		return nil

	case bool:
		digest.Write([]byte(strconv.FormatBool(value)))
		return nil

	case nil:
		digest.Write([]byte("null"))
		return nil

	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}
