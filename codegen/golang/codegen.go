// Package golang generates Go source from compiled machine specs: the
// state and event enumerations, the requested capability methods, and the
// ProcessEvent lookup over the fully expanded transition table.
package golang

import (
	"fmt"
	"strings"

	"github.com/statec-xyz/go-statec/machine"
)

// Generate produces a self-contained Go source file for the machine.
// The zero value of the state type is the initial state, and ProcessEvent
// is a pure nested switch over the expanded table: no wildcard or
// alternation matching remains at run time.
func Generate(spec *machine.Spec, packageName string) string {
	if packageName == "" {
		packageName = "statemachine"
	}
	g := &generator{spec: spec}
	return g.generate(packageName)
}

type generator struct {
	spec *machine.Spec
}

func (g *generator) stateType() string { return g.spec.Name + "State" }
func (g *generator) eventType() string { return g.spec.Name + "Event" }

func (g *generator) generate(packageName string) string {
	var b strings.Builder

	b.WriteString("// Code generated by statec. DO NOT EDIT.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", packageName))

	if g.needsErrors() {
		b.WriteString("import \"errors\"\n\n")
	}

	g.writeEnum(&b, g.stateType(), g.spec.States, g.spec.DeriveStates, true)
	g.writeEnum(&b, g.eventType(), g.spec.Events, g.spec.DeriveEvents, false)
	g.writeProcessEvent(&b)

	return b.String()
}

func (g *generator) needsErrors() bool {
	return machine.HasCapability(g.spec.DeriveStates, machine.CapText) ||
		machine.HasCapability(g.spec.DeriveEvents, machine.CapText)
}

// writeEnum emits one enumeration type with its constants and the methods
// requested by the derive list, applied uniformly to every variant.
func (g *generator) writeEnum(b *strings.Builder, typeName string, idents []string, derives []string, isState bool) {
	machineName := g.spec.Name
	if machineName == "" {
		machineName = "default"
	}

	if isState {
		fmt.Fprintf(b, "// %s enumerates the states of the %s machine.\n", typeName, machineName)
		fmt.Fprintf(b, "// The zero value is the initial state (%s%s).\n", typeName, idents[0])
	} else {
		fmt.Fprintf(b, "// %s enumerates the events of the %s machine.\n", typeName, machineName)
	}
	fmt.Fprintf(b, "type %s int\n\n", typeName)

	b.WriteString("const (\n")
	for i, ident := range idents {
		if i == 0 {
			fmt.Fprintf(b, "\t%s%s %s = iota\n", typeName, ident, typeName)
		} else {
			fmt.Fprintf(b, "\t%s%s\n", typeName, ident)
		}
	}
	b.WriteString(")\n\n")

	debug := machine.HasCapability(derives, machine.CapDebug)
	text := machine.HasCapability(derives, machine.CapText)
	if !debug && !text {
		return
	}

	namesVar := lowerFirst(typeName) + "Names"
	fmt.Fprintf(b, "var %s = [...]string{", namesVar)
	for i, ident := range idents {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q", ident)
	}
	b.WriteString("}\n\n")

	if debug {
		fmt.Fprintf(b, "// String returns the identifier of the %s.\n", typeName)
		fmt.Fprintf(b, "func (v %s) String() string {\n", typeName)
		fmt.Fprintf(b, "\tif v < 0 || int(v) >= len(%s) {\n", namesVar)
		fmt.Fprintf(b, "\t\treturn \"%s(invalid)\"\n", typeName)
		b.WriteString("\t}\n")
		fmt.Fprintf(b, "\treturn %s[v]\n", namesVar)
		b.WriteString("}\n\n")
	}

	if text {
		fmt.Fprintf(b, "// MarshalText implements encoding.TextMarshaler.\n")
		fmt.Fprintf(b, "func (v %s) MarshalText() ([]byte, error) {\n", typeName)
		fmt.Fprintf(b, "\tif v < 0 || int(v) >= len(%s) {\n", namesVar)
		fmt.Fprintf(b, "\t\treturn nil, errors.New(\"invalid %s\")\n", typeName)
		b.WriteString("\t}\n")
		fmt.Fprintf(b, "\treturn []byte(%s[v]), nil\n", namesVar)
		b.WriteString("}\n\n")

		fmt.Fprintf(b, "// UnmarshalText implements encoding.TextUnmarshaler.\n")
		fmt.Fprintf(b, "func (v *%s) UnmarshalText(text []byte) error {\n", typeName)
		fmt.Fprintf(b, "\tfor i, name := range %s {\n", namesVar)
		b.WriteString("\t\tif name == string(text) {\n")
		fmt.Fprintf(b, "\t\t\t*v = %s(i)\n", typeName)
		b.WriteString("\t\t\treturn nil\n")
		b.WriteString("\t\t}\n")
		b.WriteString("\t}\n")
		fmt.Fprintf(b, "\treturn errors.New(\"unknown %s: \" + string(text))\n", typeName)
		b.WriteString("}\n\n")
	}
}

// writeProcessEvent emits the transition lookup. Absence of a transition is
// a normal result, reported through the second return value.
func (g *generator) writeProcessEvent(b *strings.Builder) {
	stateType := g.stateType()
	eventType := g.eventType()

	fmt.Fprintf(b, "// ProcessEvent returns the state reached from s on e. The second result\n")
	fmt.Fprintf(b, "// is false when the machine defines no transition for the pair.\n")
	fmt.Fprintf(b, "func (s %s) ProcessEvent(e %s) (%s, bool) {\n", stateType, eventType, stateType)
	b.WriteString("\tswitch s {\n")
	for si, state := range g.spec.States {
		rows := g.stateRows(machine.StateID(si))
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(b, "\tcase %s%s:\n", stateType, state)
		b.WriteString("\t\tswitch e {\n")
		for _, row := range rows {
			fmt.Fprintf(b, "\t\tcase %s%s:\n", eventType, g.spec.EventName(row.event))
			fmt.Fprintf(b, "\t\t\treturn %s%s, true\n", stateType, g.spec.StateName(row.target))
		}
		b.WriteString("\t\t}\n")
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn s, false\n")
	b.WriteString("}\n")
}

type tableRow struct {
	event  machine.EventID
	target machine.StateID
}

func (g *generator) stateRows(state machine.StateID) []tableRow {
	var rows []tableRow
	for ei := 0; ei < g.spec.NumEvents(); ei++ {
		if target, ok := g.spec.ProcessEvent(state, machine.EventID(ei)); ok {
			rows = append(rows, tableRow{event: machine.EventID(ei), target: target})
		}
	}
	return rows
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0]+'a'-'A') + s[1:]
	}
	return s
}
