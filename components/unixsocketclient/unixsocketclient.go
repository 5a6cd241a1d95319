// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package unixsocketclient implements the UnixSocketClient reference
// component: it dials the Unix domain socket named on CONF, writes every
// IN packet to the connection length-prefixed, and forwards every
// newline-delimited response line read back from the connection to OUT.
package unixsocketclient

import (
	"bufio"
	"encoding/binary"
	"net"

	"code.hybscloud.com/flowd"
)

// writeFrame writes payload to w prefixed with its length as a 4-byte
// big-endian header, so the peer can read an exact-sized IN packet back
// out even if it contains embedded newlines.
func writeFrame(w net.Conn, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// Component is the UnixSocketClient reference implementation.
type Component struct {
	conf *flowd.Consumer
	in   *flowd.Consumer
	out  *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	name string
	log  flowd.SLogger
	park *flowd.Parker
}

// New constructs UnixSocketClient from deps, draining its CONF/IN/OUT ports.
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
		name:       deps.Name,
		log:        log,
		park:       park,
	}, nil
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("UnixSocketClient is now running")

	confIP, err := c.conf.Pop()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}
	socketPath := string(confIP)

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		c.log.Error("failed to dial unix socket, exiting", "path", socketPath, "error", err)
		return
	}
	defer conn.Close()

	// evName identifies this read-dispatcher goroutine in log records,
	// mirroring the original runtime's "<parent>/EV" sub-thread name now
	// that Go goroutines have no queryable name of their own (SPEC_FULL §9(d)).
	evName := c.name + "/EV"

	// The OUT producer is only ever touched from this goroutine, so it
	// stays a legal single-producer edge endpoint.
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			if _, err := c.out.Push(line); err != nil {
				c.log.Error("could not push into OUT", "component", evName, "error", err)
			}
		}
	}()

	for {
		if sig, err := c.signalsIn.TryRecv(); err == nil {
			switch string(sig) {
			case flowd.SignalStop:
				c.log.Info("got stop signal, exiting")
				conn.Close()
				<-done
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
			if err := writeFrame(conn, ip); err != nil {
				c.log.Error("failed to write to unix socket", "error", err)
			}
		}

		if c.in.IsAbandoned() {
			c.log.Info("EOF on inport, shutting down")
			conn.Close()
			<-done
			c.out.Close()
			return
		}

		c.park.Park()
	}
}

// Metadata implements the component descriptor (§4.D "metadata").
func Metadata() flowd.ComponentDescriptor {
	return flowd.ComponentDescriptor{
		Name:        "main/UnixSocketClient",
		Description: "Dials the Unix domain socket named on CONF, forwards IN packets into it and forwards lines read back from it to OUT.",
		Icon:        "exchange",
		InPorts: []flowd.PortDescriptor{
			{Name: "CONF", AllowedType: "any", Required: true, Description: "filesystem path of the Unix domain socket to dial"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "data to send over the socket"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "lines read back from the socket"},
		},
	}
}
