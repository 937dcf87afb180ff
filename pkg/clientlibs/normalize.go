package clientlibs

import "strings"

// Normalizer turns dependency references and member paths into comparison
// keys. A reference matches a member when both produce the same key.
//
// Normalization strips a leading "./", removes the first occurrence of the
// asset type's configured prefix, then removes every slash. This lets a
// dependency be declared with a shorter or differently rooted name than
// the member's actual path.
type Normalizer struct {
	Prefixes map[AssetType]string
}

// NewNormalizer creates a Normalizer with the given per-type prefixes.
// Empty prefixes are ignored.
func NewNormalizer(stylePrefix, scriptPrefix string) Normalizer {
	return Normalizer{
		Prefixes: map[AssetType]string{
			AssetStyle:  stylePrefix,
			AssetScript: scriptPrefix,
		},
	}
}

// Key returns the comparison key for a reference or path of the given type.
func (n Normalizer) Key(t AssetType, ref string) string {
	key := strings.ReplaceAll(strings.TrimSpace(ref), "\\", "/")
	key = strings.TrimPrefix(key, "./")
	prefix := strings.TrimPrefix(strings.ReplaceAll(n.Prefixes[t], "\\", "/"), "./")
	if prefix != "" {
		key = strings.Replace(key, prefix, "", 1)
	}
	return strings.ReplaceAll(key, "/", "")
}

// RecordKey returns the comparison key for a member file.
func (n Normalizer) RecordKey(rec FileRecord) string {
	p := rec.RelPath
	if p == "" {
		p = rec.Path
	}
	return n.Key(rec.AssetType, p)
}
