// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

// ComponentDescriptor is the metadata value a component's Metadata method
// returns without constructing an instance (§4.D). It is read by the
// (external) graph front-end and serialized to the FBP protocol's JSON form
// per the field-renaming rules in §6.
type ComponentDescriptor struct {
	// Name is library-prefixed, e.g. "main/Count".
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Subgraph    bool             `json:"subgraph"`
	InPorts     []PortDescriptor `json:"inPorts"`
	OutPorts    []PortDescriptor `json:"outPorts"`
}

// PortDescriptor describes a single inport or outport for the graph
// front-end. Field names on the Go struct match the internal names used
// throughout this module; JSON tags apply §6's external rename table
// (name→id, allowed_type→type, is_arrayport→addressable, values_allowed→
// values, value_default→default) with omitempty on every optional field so
// absent optionals are left out of the payload rather than serialized as
// null or "".
type PortDescriptor struct {
	Name          string   `json:"id"`
	AllowedType   string   `json:"type"`
	Schema        string   `json:"schema,omitempty"`
	Required      bool     `json:"required,omitempty"`
	IsArrayPort   bool     `json:"addressable,omitempty"`
	Description   string   `json:"description,omitempty"`
	ValuesAllowed []string `json:"values,omitempty"`
	ValueDefault  string   `json:"default,omitempty"`
}

// DefaultInPort returns the conventional default input port descriptor,
// required and typed "string".
func DefaultInPort() PortDescriptor {
	return PortDescriptor{
		Name:        "IN",
		AllowedType: "string",
		Required:    true,
		Description: "default input port",
	}
}

// DefaultOutPort returns the conventional default output port descriptor,
// required and typed "string".
func DefaultOutPort() PortDescriptor {
	return PortDescriptor{
		Name:        "OUT",
		AllowedType: "string",
		Required:    true,
		Description: "default output port",
	}
}
