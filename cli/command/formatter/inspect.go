package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Inspect writes values as an indented JSON array, or executes format for
// each value when it is set.
func Inspect(out io.Writer, values []any, format string) error {
	if format == "" || format == JSONFormatKey {
		buf, err := json.MarshalIndent(values, "", "    ")
		if err != nil {
			return err
		}
		buf = append(buf, '\n')
		_, err = out.Write(buf)
		return err
	}

	r := strings.NewReplacer(`\t`, "\t", `\n`, "\n")
	tmpl, err := parseTemplate(r.Replace(format))
	if err != nil {
		return errors.Wrap(err, "template parsing error")
	}
	buf := &bytes.Buffer{}
	for _, v := range values {
		if err := tmpl.Execute(buf, v); err != nil {
			return errors.Wrap(err, "template parsing error")
		}
		buf.WriteByte('\n')
	}
	_, err = buf.WriteTo(out)
	return err
}
