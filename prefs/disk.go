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
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// WarningBoilerPlate is the first line of every prefs file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// NoPrefsFile is returned by Load() when the prefs file does not exist. In
// most cases it is not an error and the default values should be used.
var NoPrefsFile = errors.New("prefs: no prefs file")

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// the separator between key and value in the prefs file
const keySep = " :: "

// Disk represents preference values as stored on disk. Values are added
// with Add() and the whole set is read and written with Load() and Save().
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for prefs file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// String returns the current values of the preferences added to the Disk, in
// the same format used in the prefs file.
func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s strings.Builder
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// Add preference value to list of values to store/load from Disk. The key
// must be unique and must not contain the key separator.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, strings.TrimSpace(keySep)) || strings.TrimSpace(key) != key || key == "" {
		return fmt.Errorf("prefs: illegal key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}

// read the prefs file into a map of strings. keys with no value are ignored
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NoPrefsFile
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	data := make(map[string]string)

	scanner := bufio.NewScanner(f)

	// first line must be the warning boiler plate
	if !scanner.Scan() || scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: not a valid prefs file (%s)", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), keySep)
		if ok {
			data[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return data, nil
}

// Save current preference values to disk. Entries in an existing prefs file
// that have not been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	data, err := dsk.read()
	if err != nil {
		if !errors.Is(err, NoPrefsFile) {
			return err
		}
		data = make(map[string]string)
	}

	for k, p := range dsk.entries {
		data[k] = p.String()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s strings.Builder
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, data[k]))
	}

	err = os.WriteFile(dsk.path, []byte(s.String()), 0o600)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. Values on the top of the command line
// stack take priority over values in the file. NoPrefsFile is returned if
// the file does not exist, after the command line values have been applied.
func (dsk *Disk) Load() error {
	data, err := dsk.read()
	if err != nil && !errors.Is(err, NoPrefsFile) {
		return err
	}

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
			continue
		}

		if v, ok := data[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return err
}
