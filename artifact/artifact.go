// Package artifact serializes compiled machines as compact CBOR blobs for
// the table-interpretation path: a host that does not want a codegen step
// can decode the artifact and drive machine.Spec.ProcessEvent directly.
package artifact

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/statec-xyz/go-statec/machine"
)

// FormatVersion identifies the artifact layout. Decode rejects artifacts
// written by a newer layout.
const FormatVersion = 1

// ErrUnsupportedVersion indicates an artifact written by an incompatible
// statec version.
var ErrUnsupportedVersion = errors.New("artifact: unsupported format version")

// envelope is the serialized form: identifier enumerations plus the
// row-major transition table (-1 marks "no transition").
type envelope struct {
	Version int      `cbor:"v"`
	Name    string   `cbor:"name"`
	States  []string `cbor:"states"`
	Events  []string `cbor:"events"`
	Table   []int32  `cbor:"table"`
}

// Encode serializes a compiled machine.
func Encode(spec *machine.Spec) ([]byte, error) {
	env := envelope{
		Version: FormatVersion,
		Name:    spec.Name,
		States:  spec.States,
		Events:  spec.Events,
		Table:   spec.Table(),
	}
	data, err := cbor.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode: %w", err)
	}
	return data, nil
}

// Decode reconstructs a compiled machine from its serialized form,
// re-validating the table shape.
func Decode(data []byte) (*machine.Spec, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("artifact: decode: %w", err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return machine.FromTable(env.Name, env.States, env.Events, env.Table)
}
