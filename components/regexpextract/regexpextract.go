// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package regexpextract implements the RegexpExtract reference component:
// it applies a regular expression's first capture group to every IN packet
// and forwards the capture (or an empty IP on no match) to OUT.
package regexpextract

import (
	"regexp"

	"code.hybscloud.com/flowd"
)

// Component is the RegexpExtract reference implementation.
type Component struct {
	regexp *flowd.Consumer
	in     *flowd.Consumer
	out    *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs RegexpExtract from deps, draining its REGEXP/IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
	re, ok := deps.Inports.Remove("REGEXP")
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
		regexp:     re,
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
	c.log.Debug("RegexpExtract is now running")

	reIP, err := c.regexp.Pop()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}
	re, err := regexp.Compile(string(reIP))
	if err != nil {
		c.log.Error("failed to compile given regexp, exiting", "error", err)
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

			var result []byte
			if m := re.FindSubmatch(ip); len(m) > 1 {
				result = m[1]
			} else {
				result = []byte{}
			}
			if _, err := c.out.Push(result); err != nil {
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
		Name:        "main/RegexpExtract",
		Description: "Applies given regexp to IPs from IN port and sends the matched results to OUT port.",
		Icon:        "search",
		InPorts: []flowd.PortDescriptor{
			{Name: "REGEXP", AllowedType: "any", Required: true, Description: "the regular expression to apply"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "data to apply the given regexp to"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "extracted match data"},
		},
	}
}
