// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package textreplace implements the TextReplace reference component: it
// reads replacement pairs from CONF (an even number of IPs, "from" then
// "to"), then applies all pairs to each IN packet in a single pass and
// forwards the result to OUT. Where several "from" strings match at the
// same position, the pair given first wins; replaced text is not scanned
// again by later pairs.
package textreplace

import (
	"strings"

	"code.hybscloud.com/flowd"
)

// Component is the TextReplace reference implementation.
type Component struct {
	conf *flowd.Consumer
	in   *flowd.Consumer
	out  *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs TextReplace from deps, draining its CONF/IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
	conf, ok := deps.Inports.Remove("CONF")
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
		conf:       conf,
		in:         in,
		out:        out,
		signalsIn:  deps.SignalsIn,
		signalsOut: deps.SignalsOut,
		log:        log,
		park:       park,
	}, nil
}

// readReplacements drains CONF pairwise: a "from" IP followed by a "to"
// IP. A trailing unpaired IP (e.g. a final blank line) is ignored, same
// as CONF being abandoned mid-pair.
func (c *Component) readReplacements() []string {
	var pairs []string
	for {
		for c.conf.Slots() < 2 {
			if c.conf.IsAbandoned() {
				return pairs
			}
			c.park.Park()
		}
		for c.conf.Slots() >= 2 {
			from, err := c.conf.Pop()
			if err != nil {
				break
			}
			to, err := c.conf.Pop()
			if err != nil {
				break
			}
			pairs = append(pairs, string(from), string(to))
		}
		if c.conf.IsAbandoned() {
			return pairs
		}
	}
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("TextReplace is now running")

	pairs := c.readReplacements()
	replacer := strings.NewReplacer(pairs...)
	c.log.Trace("got text replacements", "count", len(pairs)/2)

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
			replaced := replacer.Replace(string(ip))
			if _, err := c.out.Push([]byte(replaced)); err != nil {
				c.log.Error("could not push into OUT", "error", err)
			}
		}

		if c.in.IsAbandoned() {
			c.log.Info("EOF on inport, shutting down")
			c.out.Close()
			return
		}

		c.park.Park()
	}
}

// Metadata implements the component descriptor (§4.D "metadata").
func Metadata() flowd.ComponentDescriptor {
	return flowd.ComponentDescriptor{
		Name:        "main/TextReplace",
		Description: "Reads IPs as UTF-8 strings, applies text replacements and forwards the processed string IPs.",
		Icon:        "cut",
		InPorts: []flowd.PortDescriptor{
			{Name: "CONF", AllowedType: "any", Required: true, Description: "IPs in a multiple of two with text replacements, first to search for, second to replace it with"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "string IPs to process"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "IPs with strings, replacements applied"},
		},
	}
}
