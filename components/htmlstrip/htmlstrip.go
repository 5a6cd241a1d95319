// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package htmlstrip implements the HTMLStrip reference component: it
// removes HTML tags from every IN packet and forwards the remaining
// content-only bytes to OUT, leaving entities (e.g. &amp;) untouched.
package htmlstrip

import (
	"bytes"

	"golang.org/x/net/html"

	"code.hybscloud.com/flowd"
)

// Component is the HTMLStrip reference implementation. It has no CONF
// port: nothing needs configuring.
type Component struct {
	in  *flowd.Consumer
	out *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs HTMLStrip from deps, draining its IN/OUT ports.
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

// removeHTMLTags strips every tag from html, leaving text content (and
// entities, e.g. "&amp;") byte-for-byte as they appeared. Quote-tracking
// inside tags (so a ">" in a quoted attribute value doesn't end the tag
// early) is scoped to this single call — a fresh tokenizer per IP, rather
// than the process-global state the original scanner used, since
// cross-packet HTML has no defined meaning here.
func removeHTMLTags(data []byte) []byte {
	z := html.NewTokenizer(bytes.NewReader(data))
	var out bytes.Buffer
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed fragment: either way, return whatever
			// text was recovered so far.
			return out.Bytes()
		case html.TextToken:
			out.Write(z.Raw())
		}
	}
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("HTMLStrip is now running")

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
			stripped := removeHTMLTags(ip)
			if _, err := c.out.Push(stripped); err != nil {
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
		Name:        "main/HTMLStrip",
		Description: "Reads data IPs, strips all HTML tags and sends the cleaned, content-only data to the OUT port.",
		Icon:        "trash",
		InPorts: []flowd.PortDescriptor{
			{Name: "IN", AllowedType: "any", Required: true, Description: "IPs with HTML code"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "HTML-stripped IPs"},
		},
	}
}
