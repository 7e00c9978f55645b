// This file is part of Gopher81.
//
// Gopher81 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher81 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher81.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// types support by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all preference types. the pre hook can veto a change
// by returning an error.
type hooks struct {
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed. If the callback returns an error the value is not
// updated.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.hookPre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.hookPost = f
}

func (h *hooks) store(v *atomic.Value, nv Value) error {
	if h.hookPre != nil {
		if err := h.hookPre(nv); err != nil {
			return err
		}
	}

	v.Store(nv)

	if h.hookPost != nil {
		if err := h.hookPost(nv); err != nil {
			return err
		}
	}

	return nil
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	hooks
	value atomic.Value // bool
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.Get())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return false
	}
	return ov.(bool)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system.
type String struct {
	hooks
	maxLen int
	value  atomic.Value // string
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// SetMaxLen sets the maximum length for a string when it is set. To set no
// limit use a value less than or equal to zero. Note that the existing string
// will be cropped if necessary - cropped string information will be lost.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max

	ov := p.value.Load()
	if ov == nil {
		return
	}

	if p.maxLen > 0 && len(ov.(string)) > p.maxLen {
		p.value.Store(ov.(string)[:p.maxLen])
	}
}

// Set new value to String type. Values of any type will be converted with
// the %v verb.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	if p.maxLen > 0 && len(nv) > p.maxLen {
		nv = nv[:p.maxLen]
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Int implements an integer type in the prefs system.
type Int struct {
	hooks
	value atomic.Value // int
}

func (p *Int) String() string {
	return fmt.Sprintf("%d", p.Get())
}

// Set new value to Int type. New value can be an int or string. Strings are
// parsed with base prefix rules so "0x7fff" and "32767" are equivalent.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case uint16:
		nv = int(v)
	case int:
		nv = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Int: %w", v, err)
		}
		nv = int(n)
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(int)
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}
