// Package scenario describes the emulated devices every acceptance test runs
// against, and parameterizes tests over them.
//
// The built-in matrix comes from Devices. A YAML file can add devices or
// override built-in ones by name, and an expression over the device fields
// narrows the matrix:
//
//	devices:
//	  - name: Small Tablet
//	    width: 1024
//	    height: 768
//	    gridUnit: 12
package scenario

import (
	"fmt"

	"github.com/joeycumines/hudcheck/internal/shell"
)

// Device is a named screen configuration.
type Device struct {
	Name     string `yaml:"name" expr:"name"`
	Width    int    `yaml:"width" expr:"width"`
	Height   int    `yaml:"height" expr:"height"`
	GridUnit int    `yaml:"gridUnit" expr:"gridUnit"`
}

// Geometry returns the device's screen.
func (d Device) Geometry() shell.Geometry {
	return shell.Geometry{Width: d.Width, Height: d.Height, GridUnit: d.GridUnit}
}

// Validate reports whether the device can host a shell.
func (d Device) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("device has no name")
	}
	if err := d.Geometry().Validate(); err != nil {
		return fmt.Errorf("device %q: %w", d.Name, err)
	}
	return nil
}

// String implements fmt.Stringer.
func (d Device) String() string {
	return fmt.Sprintf("%s (%dx%d gu=%d)", d.Name, d.Width, d.Height, d.GridUnit)
}

// Devices returns the built-in device matrix.
func Devices() []Device {
	return []Device{
		{Name: "Desktop Nexus 4", Width: 768, Height: 1280, GridUnit: 18},
		{Name: "Desktop Nexus 10", Width: 2560, Height: 1600, GridUnit: 20},
		{Name: "Native Device", Width: 720, Height: 1280, GridUnit: 8},
	}
}
