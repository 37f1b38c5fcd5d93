// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package hostconf

import (
	"fmt"
	"regexp"
)

const (
	portMin = 0
	portMax = 65535
)

// The pattern is anchored at the start only and constrains each octet to
// 1-3 digits without bounding it to 0-255, so values like 999.999.999.999
// are accepted. Known limitation of the dotted quad check.
var ipv4Pattern = regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`)

// IPFormatError occurs if a value written through [Guarded.SetIP] does
// not match the IPv4 dotted quad pattern.
type IPFormatError struct {
	IP string
}

// Error implements the error interface.
func (e IPFormatError) Error() string {
	return fmt.Sprintf("ip '%s' does not have correct format", e.IP)
}

// PortRangeError occurs if a value written through [Guarded.SetPort] is
// outside of the valid port range.
type PortRangeError struct {
	Port int
}

// Error implements the error interface.
func (e PortRangeError) Error() string {
	return fmt.Sprintf("port %d is not in valid range", e.Port)
}

// Guarded wraps a single [Accessor] and validates every write before
// delegating it to the wrapped store. Reads delegate directly.
//
// Guarded holds a reference to the wrapped store rather than owning it;
// discarding the wrapper leaves the store untouched.
type Guarded struct {
	acc Accessor
}

// Guard returns a [Guarded] which validates all writes to acc.
func Guard(acc Accessor) *Guarded {
	return &Guarded{acc: acc}
}

// GetIP implements the Accessor interface by delegating to the wrapped store.
func (g *Guarded) GetIP() string {
	return g.acc.GetIP()
}

// SetIP implements the Accessor interface. The given ip must match the
// IPv4 dotted quad pattern or an [IPFormatError] is returned and the
// wrapped store is left unchanged.
func (g *Guarded) SetIP(ip string) error {
	if !ipv4Pattern.MatchString(ip) {
		return IPFormatError{IP: ip}
	}
	return g.acc.SetIP(ip)
}

// GetPort implements the Accessor interface by delegating to the wrapped store.
func (g *Guarded) GetPort() int {
	return g.acc.GetPort()
}

// SetPort implements the Accessor interface. The given port must be in
// the range [0, 65535] or a [PortRangeError] is returned and the wrapped
// store is left unchanged.
func (g *Guarded) SetPort(port int) error {
	if port < portMin || port > portMax {
		return PortRangeError{Port: port}
	}
	return g.acc.SetPort(port)
}

// String implements the fmt.Stringer interface. Values are read through
// the wrapped store.
func (g *Guarded) String() string {
	return render(g, g.GetIP(), g.GetPort())
}
