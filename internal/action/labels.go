package action

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Label is a single deployment label.
type Label struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// ParseLabels splits a labels input of key=value pairs separated by commas or
// whitespace. Double-quoted sections may contain either separator.
func ParseLabels(s string) ([]Label, error) {
	var b strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			r = ' '
		}
		b.WriteRune(r)
	}

	fields, err := shellquote.Split(b.String())
	if err != nil {
		return nil, err
	}

	labels := make([]Label, 0, len(fields))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("label %q must be in key=value form", field)
		}
		labels = append(labels, Label{Key: key, Value: value})
	}

	return labels, nil
}
