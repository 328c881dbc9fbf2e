package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk device file.
type file struct {
	Devices []Device `yaml:"devices"`
}

// Load decodes a device file. Unknown fields are rejected, every device must
// be valid, and names must be unique.
func Load(r io.Reader) ([]Device, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Devices))
	for _, d := range f.Devices {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("duplicate device %q", d.Name)
		}
		seen[d.Name] = struct{}{}
	}

	return f.Devices, nil
}

// LoadFile reads a device file from disk.
func LoadFile(path string) ([]Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read device file: %w", err)
	}
	devices, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return devices, nil
}

// Merge returns base with overlay applied: a device in overlay replaces the
// base device of the same name in place, and new devices are appended in
// overlay order.
func Merge(base, overlay []Device) []Device {
	out := append([]Device(nil), base...)
	index := make(map[string]int, len(out))
	for i, d := range out {
		index[d.Name] = i
	}
	for _, d := range overlay {
		if i, ok := index[d.Name]; ok {
			out[i] = d
			continue
		}
		index[d.Name] = len(out)
		out = append(out, d)
	}
	return out
}

// Matrix returns the built-in devices merged with those in path (if any),
// narrowed by filter (if any).
func Matrix(path, filter string) ([]Device, error) {
	devices := Devices()
	if path != "" {
		extra, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		devices = Merge(devices, extra)
	}
	return Filter(devices, filter)
}
