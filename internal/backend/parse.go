package backend

import (
	"encoding/json"
	"regexp"

	"github.com/dvcrn/fetch-relay/internal/fetch"
)

// xssiPrefix is prepended by some servers to JSON responses so they cannot
// be executed as a script.
var xssiPrefix = regexp.MustCompile(`^\)\]\}',?\n`)

// StripXSSIPrefix removes a leading anti-hijacking prefix from a JSON body.
func StripXSSIPrefix(body string) string {
	return xssiPrefix.ReplaceAllLiteralString(body, "")
}

// ParseJSON decodes a JSON body after stripping the anti-hijacking prefix.
// An empty body decodes to nil.
func ParseJSON(text string) (any, error) {
	text = StripXSSIPrefix(text)
	if text == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// parseBody decodes res according to t. raw is the text read so far, kept
// for diagnostics when decoding fails.
func parseBody(res *fetch.Response, t ResponseType) (body any, raw string, err error) {
	switch t {
	case ResponseTypeJSON:
		text, err := res.Text()
		if err != nil {
			return nil, text, err
		}
		v, err := ParseJSON(text)
		return v, text, err
	case ResponseTypeBlob:
		b, err := res.Blob()
		return b, "", err
	case ResponseTypeArrayBuffer:
		b, err := res.ArrayBuffer()
		return b, "", err
	default:
		text, err := res.Text()
		return text, text, err
	}
}
