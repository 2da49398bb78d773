// Package form owns the document being edited. A Form is the single
// mutable cell in the program: it holds the current value tree and the
// last parse error, is replaced wholesale on a successful parse, and is
// otherwise only changed through path-addressed updates. Every update
// either yields a fully well-formed new tree or leaves the form as it
// was.
package form

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mcncl/jsonedit/internal/config"
	"github.com/mcncl/jsonedit/internal/editor"
	"github.com/mcncl/jsonedit/internal/models"
	"github.com/mcncl/jsonedit/internal/parser"
	"github.com/mcncl/jsonedit/internal/path"
)

// Form holds the current document, or nothing before the first
// successful parse.
type Form struct {
	value   *models.Value
	lastErr error
	cfg     *config.Config
}

// New returns an empty form using the given configuration. A nil config
// falls back to defaults.
func New(cfg *config.Config) *Form {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Form{cfg: cfg}
}

// Load parses raw text and, on success, replaces the current tree
// wholesale. On failure the previous tree is kept as-is and the parse
// error is recorded and returned; a failed parse never replaces good
// data with nothing.
func (f *Form) Load(raw string) error {
	v, err := parser.ParseString(raw)
	if err != nil {
		f.lastErr = err
		return err
	}
	f.value = v
	f.lastErr = nil
	return nil
}

// SetValue replaces the current tree directly, for documents parsed
// outside the form (file input, subtree selection).
func (f *Form) SetValue(v *models.Value) {
	f.value = v
	f.lastErr = nil
}

// Value returns the current tree, or nil before the first successful
// parse.
func (f *Form) Value() *models.Value { return f.value }

// Err returns the error from the most recent Load, or nil if it
// succeeded.
func (f *Form) Err() error { return f.lastErr }

// Loaded reports whether the form holds a document.
func (f *Form) Loaded() bool { return f.value != nil }

// SetString writes an edited string leaf. The text is taken as typed,
// with no coercion.
func (f *Form) SetString(p path.Path, s string) {
	f.apply(p, models.NewString(s))
}

// SetBool writes a toggled boolean leaf.
func (f *Form) SetBool(p path.Path, b bool) {
	f.apply(p, models.NewBool(b))
}

// SetNumberText writes an edited numeric leaf from its raw text. Input
// that parses as a float keeps exactly the typed form; anything else is
// substituted with 0. The substitution is deliberate and silent, it is
// not surfaced as an error.
func (f *Form) SetNumberText(p path.Path, raw string) {
	f.apply(p, models.NewNumber(CoerceNumber(raw)))
}

func (f *Form) apply(p path.Path, leaf *models.Value) {
	if f.value == nil {
		return
	}
	f.value = editor.Apply(f.value, p, leaf)
}

// At reads the node the path currently addresses.
func (f *Form) At(p path.Path) (*models.Value, bool) {
	return editor.Resolve(f.value, p)
}

// Export serializes the current tree as pretty-printed JSON using the
// form's output configuration.
func (f *Form) Export() (string, error) {
	return parser.Serialize(f.value, parser.Options{
		Indent:   f.cfg.Output.Indent,
		SortKeys: f.cfg.Output.SortKeys,
	})
}

// Config exposes the form's configuration to the presentation layer.
func (f *Form) Config() *config.Config { return f.cfg }

// CoerceNumber turns raw field input into a json.Number. Parseable input
// is preserved verbatim when it is also a legal JSON number literal;
// other parseable forms (leading "+", "Inf", hex floats) are reformatted;
// unparseable input becomes "0".
func CoerceNumber(raw string) json.Number {
	raw = strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return json.Number("0")
	}
	if json.Valid([]byte(raw)) {
		return json.Number(raw)
	}
	out, err := json.Marshal(f)
	if err != nil {
		// Inf and NaN have no JSON representation.
		return json.Number("0")
	}
	return json.Number(out)
}
