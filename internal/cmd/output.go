package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by every read command
const (
	outputJSON = "json"
	outputText = "text"
	outputYAML = "yaml"
)

// OutputFlag selects how a command renders its result
type OutputFlag struct {
	Output string `help:"Output format: text, json or yaml" enum:"text,json,yaml" default:"text" short:"o"`
}

// structured writes v as JSON or YAML and reports whether it did.
// Text output is left to the caller.
func (f OutputFlag) structured(w io.Writer, v any) (bool, error) {
	switch f.Output {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// formatTime renders a timestamp for text output
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
