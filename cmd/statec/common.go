package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/statec-xyz/go-statec/artifact"
	"github.com/statec-xyz/go-statec/dsl"
	"github.com/statec-xyz/go-statec/machine"
	"github.com/statec-xyz/go-statec/parser"
	"github.com/statec-xyz/go-statec/store"
)

// loadDefinition reads a machine definition from disk. Files ending in
// .json are treated as the JSON interchange format; everything else is
// parsed as DSL text. Returns the definition and the raw source.
func loadDefinition(path string) (*machine.Definition, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read definition: %w", err)
	}
	source := string(data)

	if strings.HasSuffix(path, ".json") {
		def, err := parser.FromJSON(data)
		if err != nil {
			return nil, source, err
		}
		return def, source, nil
	}

	node, err := dsl.Parse(source)
	if err != nil {
		return nil, source, err
	}
	return dsl.Definition(node), source, nil
}

// loadSpec loads a compiled machine. Files ending in .cbor are decoded as
// packed artifacts; everything else goes through loadDefinition and a
// fresh compile.
func loadSpec(path string) (*machine.Spec, error) {
	if strings.HasSuffix(path, ".cbor") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artifact: %w", err)
		}
		return artifact.Decode(data)
	}

	def, _, err := loadDefinition(path)
	if err != nil {
		return nil, err
	}
	return def.Compile()
}

// compileWithHistory compiles a definition and, when historyPath is set,
// records the attempt in the compile-history database. The compile error,
// if any, is returned after recording.
func compileWithHistory(def *machine.Definition, source, historyPath string) (*machine.Spec, error) {
	spec, compileErr := def.Compile()

	if historyPath != "" {
		s, err := store.Open(historyPath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("history database unavailable")
		} else {
			defer s.Close()
			if _, err := s.RecordCompile(source, spec, compileErr); err != nil {
				logger.Warn().Err(err).Msg("failed to record compilation")
			}
		}
	}

	return spec, compileErr
}
