package catalog

import "strings"

// MakeIndexID qualifies a bare file stem with namespace. Stems that already
// contain a colon are returned unchanged.
func MakeIndexID(namespace, stem string) string {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return ""
	}
	if strings.Contains(stem, ":") {
		return stem
	}
	return namespace + ":" + stem
}

// RefToStem strips an optional namespace from a data reference:
// "tacz:ak47_data" and "ak47_data" both yield "ak47_data".
func RefToStem(ref string) string {
	ref = strings.TrimSpace(ref)
	if _, after, ok := strings.Cut(ref, ":"); ok {
		return after
	}
	return ref
}
