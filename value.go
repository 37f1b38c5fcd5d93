// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package hostconf

// Value is a plain holder for host connection settings.
//
// No invariants are enforced on it directly. Wrap it with [Guard] to
// validate mutations. A Value is owned by whichever accessor currently
// references it; it is not safe for concurrent use without external
// synchronization.
type Value struct {
	IP   string `config:"ip"`
	Port int    `config:"port"`
}

// GetIP implements the Accessor interface.
func (v *Value) GetIP() string {
	return v.IP
}

// SetIP implements the Accessor interface. It never fails.
func (v *Value) SetIP(ip string) error {
	v.IP = ip
	return nil
}

// GetPort implements the Accessor interface.
func (v *Value) GetPort() int {
	return v.Port
}

// SetPort implements the Accessor interface. It never fails.
func (v *Value) SetPort(port int) error {
	v.Port = port
	return nil
}

// String implements the fmt.Stringer interface.
func (v *Value) String() string {
	return render(v, v.IP, v.Port)
}
