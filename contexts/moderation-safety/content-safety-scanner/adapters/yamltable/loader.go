package yamltable

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"creatorhub/contexts/moderation-safety/content-safety-scanner/domain/patterns"

	"gopkg.in/yaml.v3"
)

//go:embed default_patterns.yaml
var defaultPatterns []byte

// Parse decodes a YAML pattern table and compiles it. Unknown keys are
// rejected so a typo in an override file fails at startup.
func Parse(data []byte) (*patterns.Table, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var def patterns.Definition
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode pattern table: %w", err)
	}
	return patterns.Compile(def)
}

func LoadDefault() (*patterns.Table, error) {
	return Parse(defaultPatterns)
}

// Load reads the table at path, or the embedded default when path is empty.
func Load(path string) (*patterns.Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern table %s: %w", path, err)
	}
	return Parse(data)
}

// MustLoadDefault panics if the embedded table does not compile. It is meant
// for tests and in-memory wiring where the embedded file is known good.
func MustLoadDefault() *patterns.Table {
	table, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return table
}
