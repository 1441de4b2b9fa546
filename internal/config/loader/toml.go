package loader

import (
	"bytes"
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML decodes TOML data into v. Unknown keys are errors so typos in
// setting names do not go unnoticed.
func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
	}
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		pe.Line, pe.Column = strict.Errors[0].Position()
		pe.Message = "unknown setting " + keyString(strict.Errors[0].Key())
	}
	return pe
}

func keyString(k toml.Key) string {
	var b bytes.Buffer
	for i, part := range k {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
