package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/tidwall/pretty"

	"github.com/mcncl/jsonedit/internal/errors"
	"github.com/mcncl/jsonedit/internal/models"
)

// Parse decodes a single JSON document from the reader into a Value tree.
// The token stream is consumed directly so mapping keys keep their source
// order, which a decode through map[string]interface{} would destroy.
// Numbers are kept as json.Number so their textual form survives a
// round-trip. Any valid top-level JSON value is accepted, including bare
// scalars and null.
func Parse(reader io.Reader) (*models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, parseError(err)
	}

	v, err := decodeValue(decoder, tok)
	if err != nil {
		return nil, parseError(err)
	}

	// Reject trailing data after the first document. Whitespace up to
	// EOF is fine.
	if _, err := decoder.Token(); err == nil {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return nil, parseError(err)
	}

	return v, nil
}

// decodeValue builds a Value from the token that opens it, recursing for
// containers. The decoder validates delimiter nesting itself.
func decodeValue(decoder *json.Decoder, tok json.Token) (*models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var pairs []models.Pair
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.ErrInvalidJSON
				}
				valTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				child, err := decodeValue(decoder, valTok)
				if err != nil {
					return nil, err
				}
				pairs = append(pairs, models.Pair{Key: key, Value: child})
			}
			// Consume the closing '}'.
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return models.NewMapping(pairs...), nil
		case '[':
			var elems []*models.Value
			for decoder.More() {
				elemTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				elem, err := decodeValue(decoder, elemTok)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return models.NewSequence(elems...), nil
		}
		return nil, errors.ErrInvalidJSON
	case string:
		return models.NewString(t), nil
	case json.Number:
		return models.NewNumber(t), nil
	case bool:
		return models.NewBool(t), nil
	case nil:
		return models.NewUnsupported(), nil
	}
	return nil, errors.ErrInvalidJSON
}

// parseError wraps a decoder error into the parsing category. The
// decoder's own diagnostic is surfaced verbatim; the user needs the real
// offset and message, not a summary.
func parseError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError(err.Error(), err)
}

// ParseString parses a JSON document from a string.
func ParseString(jsonString string) (*models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses a JSON document from a file path.
func ParseFile(filePath string) (*models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrFileNotFound)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// Options controls serialization output.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero produces
	// compact output; values below zero fall back to 2.
	Indent int
	// SortKeys orders mapping keys alphabetically instead of preserving
	// display order.
	SortKeys bool
}

// Serialize renders the value tree as pretty-printed JSON text. Mapping
// keys keep their display order unless SortKeys is set. Output always
// ends without a trailing newline; callers add one at the I/O boundary.
func Serialize(v *models.Value, opts Options) (string, error) {
	if v == nil {
		return "", errors.NewOutputError("nothing to serialize", errors.ErrNoDocument)
	}
	compact, err := v.MarshalJSON()
	if err != nil {
		return "", errors.NewOutputError("failed to serialize document", err)
	}
	indent := opts.Indent
	if indent < 0 {
		indent = 2
	}
	if indent == 0 {
		out := pretty.Ugly(compact)
		if opts.SortKeys {
			out = pretty.Ugly(pretty.PrettyOptions(compact, &pretty.Options{SortKeys: true}))
		}
		return string(out), nil
	}
	out := pretty.PrettyOptions(compact, &pretty.Options{
		Indent:   strings.Repeat(" ", indent),
		SortKeys: opts.SortKeys,
	})
	return strings.TrimRight(string(out), "\n"), nil
}
