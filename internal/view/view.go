// Package view builds the page models shared by the web and terminal shells.
package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"pageform/internal/domain"
)

const (
	PathPageOne = "/"
	PathPageTwo = "/two"
)

// Format selects how the debug dump of the record is rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown debug format")

// ParseFormat accepts "json" or "yaml" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Field describes one input on page one.
type Field struct {
	Name  string
	Label string
	Type  string
	Value string
}

// PageOne lists the form fields, pre-filled with the current record.
func PageOne(p domain.Profile) []Field {
	return []Field{
		{Name: "firstname", Label: "First name", Type: "text", Value: p.DisplayFirstName()},
		{Name: "lastname", Label: "Lastname", Type: "text", Value: p.DisplayLastName()},
		{Name: "age", Label: "Age", Type: "number", Value: p.DisplayAge()},
	}
}

// Summary is what page two displays.
type Summary struct {
	Name  string `json:"name"`
	Age   string `json:"age"`
	Debug string `json:"debug"`
}

func NewSummary(p domain.Profile, format Format) (Summary, error) {
	debug, err := Dump(p, format)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:  p.FullName(),
		Age:   p.DisplayAge(),
		Debug: debug,
	}, nil
}

// Dump renders the full record. Undefined fields are omitted.
func Dump(p domain.Profile, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		if p.IsEmpty() {
			return "{}", nil
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
