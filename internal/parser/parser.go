package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LoadFile reads and parses the language model stored at path.
func LoadFile(path string) (*LanguageModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*LanguageModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(data)
}

// Parse decodes an interaction model document and returns its language model.
// Syntax problems are reported as FORMAT_ERROR; a well-formed document of the
// wrong shape is a SCHEMA_ERROR.
func Parse(data []byte) (*LanguageModel, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, newError(ErrorFormat, "input must be JSON", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newError(ErrorSchema, "unsupported language model, expected "+expectedShape, err)
	}

	if doc.InteractionModel == nil || doc.InteractionModel.LanguageModel == nil {
		return nil, newError(ErrorSchema, "missing interactionModel.languageModel, expected "+expectedShape, nil)
	}

	return doc.InteractionModel.LanguageModel, nil
}
