// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package trim implements the Trim reference component: it removes
// leading and trailing whitespace from every IN packet and forwards the
// trimmed bytes to OUT.
package trim

import (
	"bytes"

	"code.hybscloud.com/flowd"
)

// Component is the Trim reference implementation. It has no CONF port.
type Component struct {
	in  *flowd.Consumer
	out *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs Trim from deps, draining its IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
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
	c.log.Debug("Trim is now running")

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
			trimmed := bytes.TrimSpace(ip)
			if _, err := c.out.Push(trimmed); err != nil {
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
		Name:        "main/Trim",
		Description: "Reads IPs, trims leading and trailing whitespace and forwards the result to OUT.",
		Icon:        "compress",
		InPorts: []flowd.PortDescriptor{
			{Name: "IN", AllowedType: "any", Required: true, Description: "data IPs to trim"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "trimmed IPs"},
		},
	}
}
