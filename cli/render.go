package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// RenderName is the name of the option value that describes how to render output
type RenderName string

const (
	// YAML render output in YAML
	YAML = RenderName(`yaml`)
	// JSON render output in JSON
	JSON = RenderName(`json`)
	// Text render output as plain text
	Text = RenderName(`s`)
)

// Result is what the command renders
type Result struct {
	Location string   `json:"location" yaml:"location"`
	Matches  []string `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Render renders a Result on a writer using a specified RenderName. Plain text output is the
// location, or the matches one per line when there are any.
func Render(renderAs RenderName, r *Result, out io.Writer) (err error) {
	switch renderAs {
	case JSON:
		var bs []byte
		if bs, err = json.Marshal(r); err == nil {
			_, err = fmt.Fprintln(out, string(bs))
		}
	case YAML:
		var bs []byte
		if bs, err = yaml.Marshal(r); err == nil {
			_, err = out.Write(bs)
		}
	case Text:
		if r.Matches == nil {
			_, err = fmt.Fprintln(out, r.Location)
			return
		}
		for _, m := range r.Matches {
			if _, err = fmt.Fprintln(out, m); err != nil {
				break
			}
		}
	default:
		err = fmt.Errorf(`unknown rendering '%s'`, renderAs)
	}
	return
}
