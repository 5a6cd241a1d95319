// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package jsonquery implements the JSONQuery reference component: it
// parses a jq-style filter from the QUERY port and applies it to every
// IN packet's JSON payload, forwarding each filter result as its own OUT
// packet.
package jsonquery

import (
	"encoding/json"

	"github.com/itchyny/gojq"

	"code.hybscloud.com/flowd"
)

// Component is the JSONQuery reference implementation.
type Component struct {
	query *flowd.Consumer
	in    *flowd.Consumer
	out   *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs JSONQuery from deps, draining its QUERY/IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
	query, ok := deps.Inports.Remove("QUERY")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	in, ok := deps.Inports.Remove("IN")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	out, ok := deps.Outports.Remove("OUT")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	log := deps.Log
	if log == nil {
		log = flowd.DefaultSLogger()
	}
	park := deps.Park
	if park == nil {
		park = flowd.NewParker()
	}
	return &Component{
		query:      query,
		in:         in,
		out:        out,
		signalsIn:  deps.SignalsIn,
		signalsOut: deps.SignalsOut,
		log:        log,
		park:       park,
	}, nil
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("JSONQuery is now running")

	queryIP, err := c.query.Pop()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}
	query, err := gojq.Parse(string(queryIP))
	if err != nil {
		c.log.Error("failed to parse given filter, exiting", "error", err)
		return
	}
	code, err := gojq.Compile(query)
	if err != nil {
		c.log.Error("failed to compile given filter, exiting", "error", err)
		return
	}

	for {
		if sig, err := c.signalsIn.TryRecv(); err == nil {
			switch string(sig) {
			case flowd.SignalStop:
				c.log.Info("got stop signal, exiting")
				c.out.Close()
				return
			case flowd.SignalPing:
				_ = c.signalsOut.Send([]byte(flowd.SignalPong))
			default:
				c.log.Warn("received unknown signal", "signal", string(sig))
			}
		}

		for {
			ip, err := c.in.Pop()
			if err != nil {
				break
			}
			c.filter(code, ip)
		}

		if c.in.IsAbandoned() {
			c.log.Info("EOF on inport, shutting down")
			c.out.Close()
			return
		}

		c.park.Park()
	}
}

// filter runs code over a single IN packet's JSON payload, forwarding
// every result value as its own OUT packet.
func (c *Component) filter(code *gojq.Code, ip flowd.IP) {
	var input any
	if err := json.Unmarshal(ip, &input); err != nil {
		c.log.Error("could not parse JSON from input IP, discarding", "error", err)
		return
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return
		}
		if err, ok := v.(error); ok {
			c.log.Error("error while filtering, discarding", "error", err)
			continue
		}
		out, err := json.Marshal(v)
		if err != nil {
			c.log.Error("could not marshal filter result, discarding", "error", err)
			continue
		}
		if _, err := c.out.Push(out); err != nil {
			c.log.Error("could not push into OUT", "error", err)
		}
	}
}

// Metadata implements the component descriptor (§4.D "metadata").
func Metadata() flowd.ComponentDescriptor {
	return flowd.ComponentDescriptor{
		Name:        "main/JSONQuery",
		Description: "Reads IPs containing JSON data, filters them using a jq filter and sends the filtered results to the OUT port.",
		Icon:        "filter",
		InPorts: []flowd.PortDescriptor{
			{Name: "QUERY", AllowedType: "any", Required: true, Description: "filter to apply to the JSON data, in jq filter syntax", ValueDefault: ".[]"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "IPs to process, expected to contain JSON data"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "filtered JSON result IPs"},
		},
	}
}
