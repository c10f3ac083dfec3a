// Package relaxjson loads the JSON dialect used by TaCZ gun packs.
//
// Pack authors annotate their files with // line comments and /* */ block
// comments and routinely leave trailing commas behind. Clean removes those
// constructs with three regular expressions and Parse hands the result to a
// strict JSON decoder.
//
// # Stripping rules
//
//   - Block comments are removed first, non-greedy, across newlines.
//   - A // starts a line comment unless the character right before it is a
//     colon, which keeps "https://example.com" values intact.
//   - A comma followed only by whitespace and a closing ] or } is dropped.
//
// This is a heuristic, not a tokenizer: a quoted string holding "/*" or a
// "//" that is not preceded by a colon will be mangled.
//
// # Usage
//
//	doc, err := relaxjson.Load("index/guns/ak47.json")
//	if errors.Is(err, relaxjson.ErrMalformedDocument) {
//	    // skip the record
//	}
//	damage := doc.Get("bullet.damage").Float()
package relaxjson
