// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/soundrip-cli/soundrip/source"
)

type Result struct {
	// Source is the name of the platform the record came from.
	Source string `json:"source"`
	// Track is the resolved or flat track record.
	Track *source.Track `json:"track"`
}

type Output struct {
	// Query echoes the search query, empty for locator resolutions.
	Query  string    `json:"query,omitempty"`
	Result []*Result `json:"result"`
}

func asJson(tracks []*source.Track, query string) ([]byte, error) {
	var result = make([]*Result, len(tracks))
	for i, t := range tracks {
		result[i] = &Result{
			Source: "soundcloud",
			Track:  t,
		}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: result,
	})
}

func writeJson(out io.Writer, tracks []*source.Track, options *Options) error {
	data, err := asJson(tracks, options.Query)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// WriteSchema emits the JSON schema of the inline output shape, for
// consumers that validate or generate bindings against it.
func WriteSchema(out io.Writer) error {
	schema := jsonschema.Reflect(&Output{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}
