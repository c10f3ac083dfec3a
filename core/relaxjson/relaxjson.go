package relaxjson

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`(?m)(^|[^:])//.*$`)
	reTrailComma   = regexp.MustCompile(`,(\s*[\]}])`)

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// ErrMalformedDocument is matched by every parse failure returned from Parse and Load.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError carries the decoder failure for a document that could
// not be parsed even after cleaning.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("JSON parse failed: %v", e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedDocument) succeed.
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// Clean strips comments and trailing commas from a relaxed JSON text.
func Clean(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = reBlockComment.ReplaceAll(data, nil)
	data = reLineComment.ReplaceAll(data, []byte("${1}"))
	data = reTrailComma.ReplaceAll(data, []byte("${1}"))
	return data
}

// Document is a parsed record: the decoded attribute tree plus the cleaned
// text it came from, which backs path lookups.
type Document struct {
	raw   map[string]any
	clean []byte
}

// Parse cleans and decodes a relaxed JSON object.
func Parse(data []byte) (*Document, error) {
	clean := Clean(data)

	var root any
	if err := json.Unmarshal(clean, &root); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &MalformedDocumentError{Err: fmt.Errorf("document root is %T, not an object", root)}
	}

	return &Document{raw: obj, clean: clean}, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Raw returns the decoded attribute tree.
func (d *Document) Raw() map[string]any {
	return d.raw
}

// Has reports whether key is present with a non-null value.
func (d *Document) Has(key string) bool {
	v, ok := d.raw[key]
	return ok && v != nil
}

// Value returns the top-level value for key, or nil.
func (d *Document) Value(key string) any {
	return d.raw[key]
}

// Object returns the top-level object for key, or nil when absent or not an object.
func (d *Document) Object(key string) map[string]any {
	obj, _ := d.raw[key].(map[string]any)
	return obj
}

// Get looks up a gjson dot path (e.g. "bullet.damage") in the cleaned text.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.clean, path)
}
