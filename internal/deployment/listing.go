package deployment

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dmdeploy/internal/action"

	"gopkg.in/yaml.v3"
)

// Record is one deployment as printed by the list command. Only Name is
// needed to decide between create and update.
type Record struct {
	Name        string         `yaml:"name"`
	ID          string         `yaml:"id,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Fingerprint string         `yaml:"fingerprint,omitempty"`
	InsertTime  string         `yaml:"insertTime,omitempty"`
	UpdateTime  string         `yaml:"updateTime,omitempty"`
	Manifest    string         `yaml:"manifest,omitempty"`
	Labels      []action.Label `yaml:"labels,omitempty"`
}

// ParseDeployments decodes a stream of YAML documents, each either a single
// deployment or a list of them. A deployment whose fields do not decode is
// kept with its name only; later documents are still read. A syntax error
// ends the stream. Records decoded so far are returned with any error.
func ParseDeployments(output string) ([]Record, error) {
	var records []Record
	var errs []error

	decoder := yaml.NewDecoder(strings.NewReader(output))
	for {
		var doc yaml.Node
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return records, errors.Join(errs...)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("parsing deployment list: %w", err))
			return records, errors.Join(errs...)
		}
		if len(doc.Content) == 0 {
			continue
		}

		switch root := doc.Content[0]; root.Kind {
		case yaml.SequenceNode:
			for _, item := range root.Content {
				if record, ok := decodeRecord(item, &errs); ok {
					records = append(records, record)
				}
			}
		case yaml.MappingNode:
			if record, ok := decodeRecord(root, &errs); ok {
				records = append(records, record)
			}
		}
	}
}

// decodeRecord decodes one deployment, falling back to its name when other
// fields are malformed.
func decodeRecord(node *yaml.Node, errs *[]error) (Record, bool) {
	var record Record
	err := node.Decode(&record)
	if err == nil {
		return record, true
	}
	*errs = append(*errs, fmt.Errorf("parsing deployment: %w", err))

	var named struct {
		Name string `yaml:"name"`
	}
	if node.Decode(&named) != nil || named.Name == "" {
		return Record{}, false
	}
	return Record{Name: named.Name}, true
}

// FindDeployment returns the record named name, or nil.
func FindDeployment(records []Record, name string) *Record {
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	return nil
}
