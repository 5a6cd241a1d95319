// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package count implements the Count reference component: it tallies
// packets, total byte size, or the sum of numeric IP payloads, discards the
// IPs, and reports the tally once IN is abandoned.
package count

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"code.hybscloud.com/flowd"
)

// Mode selects what Count tallies, set via CONF's "mode" query parameter.
type Mode int

const (
	ModePackets Mode = iota
	ModeSize
	ModeSum
)

// Component is the Count reference implementation.
type Component struct {
	conf *flowd.Consumer
	in   *flowd.Consumer
	out  *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	log flowd.SLogger

	park *flowd.Parker
}

// New constructs Count from deps, draining its CONF/IN/OUT ports. Returns
// [flowd.ErrConfigMissing] if CONF, IN, or OUT has no connected endpoint.
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

// parseMode reads the CONF IP as a query string "?mode=packets|size|sum",
// matching the original's "https://makeurlhappy/?"+payload URL trick used
// to reuse a URL query parser on a bare query string.
func parseMode(conf flowd.IP) (Mode, error) {
	u, err := url.Parse("https://makeurlhappy/?" + string(conf))
	if err != nil {
		return 0, flowd.ErrPayloadMalformed
	}
	mode := u.Query().Get("mode")
	switch mode {
	case "packets":
		return ModePackets, nil
	case "size":
		return ModeSize, nil
	case "sum":
		return ModeSum, nil
	default:
		return 0, flowd.ErrPayloadMalformed
	}
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("Count is now running", "component", "count")

	confIP, err := c.blockingReadConf()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}
	mode, err := parseMode(confIP)
	if err != nil {
		c.log.Error("invalid mode in configuration, exiting", "error", err)
		return
	}

	var packets, packetSize int
	var sum int64

	for {
		c.log.Trace("begin of iteration")

		if sig, err := c.signalsIn.TryRecv(); err == nil {
			switch string(sig) {
			case flowd.SignalStop:
				c.log.Info("got stop signal, exiting")
				return
			case flowd.SignalPing:
				c.log.Trace("got ping signal, responding")
				_ = c.signalsOut.Send([]byte(flowd.SignalPong))
			default:
				c.log.Warn("received unknown signal", "signal", string(sig))
			}
		}

		for !c.in.IsEmpty() {
			chunk := c.in.ReadChunk(c.in.Slots())
			switch mode {
			case ModePackets:
				packets += len(chunk.Items)
			case ModeSize:
				for _, ip := range chunk.Items {
					packetSize += len(ip)
				}
			case ModeSum:
				for _, ip := range chunk.Items {
					v, err := strconv.ParseInt(strings.TrimSpace(string(ip)), 10, 64)
					if err != nil {
						c.log.Error("value of IP cannot be summed up, skipping", "ip", string(ip))
						continue
					}
					sum += v
				}
			}
		}

		if c.in.IsAbandoned() {
			c.log.Info("EOF on inport, shutting down")
			var report string
			switch mode {
			case ModePackets:
				report = fmt.Sprintf("%d", packets)
			case ModeSize:
				report = fmt.Sprintf("%d", packetSize)
			case ModeSum:
				report = fmt.Sprintf("%d", sum)
			}
			if _, err := c.out.Push([]byte(report)); err != nil {
				c.log.Error("could not push final report into OUT", "error", err)
			}
			c.out.Close()
			return
		}

		c.log.Trace("end of iteration")
		c.park.Park()
	}
}

// blockingReadConf polls CONF until an IP arrives or its producer is
// dropped before ever sending one.
func (c *Component) blockingReadConf() (flowd.IP, error) {
	for {
		ip, err := c.conf.Pop()
		if err == nil {
			return ip, nil
		}
		if c.conf.IsAbandoned() {
			return nil, flowd.ErrConfigMissing
		}
		c.park.Park()
	}
}

// Metadata implements the component descriptor (§4.D "metadata").
func Metadata() flowd.ComponentDescriptor {
	return flowd.ComponentDescriptor{
		Name:        "main/Count",
		Description: "Counts the number of packets, total size of IPs or sums the amounts contained in IPs, discards them, and reports the count once IN is abandoned.",
		Icon:        "bar-chart",
		InPorts: []flowd.PortDescriptor{
			{Name: "CONF", AllowedType: "any", Required: true, Description: "mode=packets|size|sum"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "IPs to count"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "reports count on this outport"},
		},
	}
}
