package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes the report as a single YAML document.
type YAMLWriter struct{}

func (YAMLWriter) Format() string { return FormatYAML }

func (YAMLWriter) Write(w io.Writer, report *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
