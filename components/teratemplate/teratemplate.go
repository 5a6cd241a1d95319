// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package teratemplate implements the TeraTemplate reference component:
// it parses a template from the TEMPLATE port, then renders it once per
// IN packet (exposed to the template as the string ".IP") and forwards
// the trimmed result to OUT.
package teratemplate

import (
	"bytes"
	"strings"
	"text/template"

	"code.hybscloud.com/flowd"
)

// Component is the TeraTemplate reference implementation.
type Component struct {
	conf *flowd.Consumer
	in   *flowd.Consumer
	out  *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs TeraTemplate from deps, draining its TEMPLATE/IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
	conf, ok := deps.Inports.Remove("TEMPLATE")
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

// templateContext is what a template sees for each IN packet.
type templateContext struct {
	IP string
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("TeraTemplate is now running")

	for c.conf.IsEmpty() && !c.conf.IsAbandoned() {
		c.park.Park()
	}
	confIP, err := c.conf.Pop()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}

	tmpl, err := template.New("teratemplate").Parse(string(confIP))
	if err != nil {
		c.log.Error("failed to parse given template, exiting", "error", err)
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

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, templateContext{IP: string(ip)}); err != nil {
				c.log.Error("failed to render template, discarding packet", "error", err)
				continue
			}
			rendered := strings.TrimSpace(buf.String())
			if _, err := c.out.Push([]byte(rendered)); err != nil {
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
		Name:        "main/TeraTemplate",
		Description: "Sends IPs through the template given on TEMPLATE and forwards the rendered result to OUT.",
		Icon:        "file-text-o",
		InPorts: []flowd.PortDescriptor{
			{Name: "TEMPLATE", AllowedType: "any", Required: true, Description: "the template source code, with the IP available as {{.IP}}"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "data inputs to be processed by the template"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "rendered template output"},
		},
	}
}
