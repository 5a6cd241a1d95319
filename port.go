// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

// Inports is a mapping from port-name to an ordered list of consumer
// endpoints — a multimap, because a port may be connected more than once
// under array-port (addressable) semantics. Connection order within a name
// is insertion order and preserved; ordering across different names has no
// meaning.
type Inports map[string][]*Consumer

// Outports is the outport analogue of [Inports], where each endpoint is a
// [Producer].
type Outports map[string][]*Producer

// Remove drains and returns the first endpoint registered under name,
// following the constructor idiom §4.B describes: extract the (first)
// endpoint and move it into the component's state. Reports ok=false if name
// has no remaining endpoints.
func (p Inports) Remove(name string) (c *Consumer, ok bool) {
	list := p[name]
	if len(list) == 0 {
		return nil, false
	}
	c, p[name] = list[0], list[1:]
	return c, true
}

// RemoveAll drains and returns every endpoint registered under name, in
// connection order. Used by array-port-aware components, which must
// iterate every binding under a name rather than just the first (§9(b)).
func (p Inports) RemoveAll(name string) []*Consumer {
	list := p[name]
	delete(p, name)
	return list
}

// Remove is the outport analogue of [Inports.Remove].
func (p Outports) Remove(name string) (pr *Producer, ok bool) {
	list := p[name]
	if len(list) == 0 {
		return nil, false
	}
	pr, p[name] = list[0], list[1:]
	return pr, true
}

// RemoveAll is the outport analogue of [Inports.RemoveAll].
func (p Outports) RemoveAll(name string) []*Producer {
	list := p[name]
	delete(p, name)
	return list
}
