// Package config describes a complete supershape build as a plain value:
// two parameter sets, a resolution, a scale and the post-processing steps.
//
// A user interface holds a Config, edits its fields and calls [Config.Build]
// whenever something changes, replacing the displayed mesh wholesale.
// Configurations can also be decoded from TOML or YAML documents; reading
// the documents is left to the caller.
//
// An example TOML document:
//
//	preset = "Starfish"
//	resolution = { long = 64, lat = 32 }
//	scale = { x = 2, y = 2, z = 1 }
//	subdivide = 1
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"honnef.co/go/supershape"
	"honnef.co/go/supershape/subdiv"
)

// Scale is a per-axis scale factor.
type Scale struct {
	X float64 `toml:"x" yaml:"x"`
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// Vec3 returns s as a vector.
func (s Scale) Vec3() supershape.Vec3 {
	return supershape.Vec(s.X, s.Y, s.Z)
}

// Config is everything needed to build a supershape mesh.
type Config struct {
	// Preset names one of [supershape.Presets]. When set, it replaces Long
	// and Lat during [Config.Resolve].
	Preset string `toml:"preset,omitempty" yaml:"preset,omitempty"`
	// Long drives the longitude sweep, Lat the latitude sweep.
	Long supershape.Params `toml:"long" yaml:"long"`
	Lat  supershape.Params `toml:"lat" yaml:"lat"`
	// Sync uses Long for both axes.
	Sync bool `toml:"sync" yaml:"sync"`

	Resolution supershape.Resolution `toml:"resolution" yaml:"resolution"`
	Scale      Scale                 `toml:"scale" yaml:"scale"`

	// Weld merges vertices closer than WeldThreshold after building. The
	// longitude seam is always closed by the builder; welding additionally
	// merges vertices crowded together near the poles or in pinched regions.
	Weld          bool    `toml:"weld" yaml:"weld"`
	WeldThreshold float64 `toml:"weld_threshold" yaml:"weld_threshold"`
	// Subdivide is the number of subdivision levels applied last.
	Subdivide int `toml:"subdivide" yaml:"subdivide"`
	// Smooth selects Catmull-Clark subdivision; otherwise subdivision is
	// linear.
	Smooth bool `toml:"smooth" yaml:"smooth"`

	// Workers is passed to [supershape.BuildOptions].
	Workers int `toml:"workers" yaml:"workers"`
}

// Default returns the configuration a new supershape starts with.
func Default() Config {
	p, _ := supershape.LookupPreset("Default")
	return Config{
		Long:          p.Long,
		Lat:           p.Lat,
		Resolution:    supershape.Res(100, 100),
		Scale:         Scale{1, 1, 1},
		WeldThreshold: supershape.DefaultWeldThreshold,
		Smooth:        true,
	}
}

// ParseTOML decodes a TOML document on top of [Default]. Unknown keys are
// rejected.
func ParseTOML(data []byte) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: decoding TOML: %w", err)
	}
	return c, nil
}

// ParseYAML decodes a YAML document on top of [Default]. Unknown keys are
// rejected. An empty document yields the default configuration.
func ParseYAML(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decoding YAML: %w", err)
	}
	return c, nil
}

// EncodeTOML encodes c as a TOML document that [ParseTOML] accepts.
func (c Config) EncodeTOML() ([]byte, error) {
	return toml.Marshal(c)
}

// EncodeYAML encodes c as a YAML document that [ParseYAML] accepts.
func (c Config) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Resolve returns c with Preset and Sync applied: a preset replaces both
// parameter sets and is cleared, Sync copies Long to Lat.
func (c Config) Resolve() (Config, error) {
	if c.Preset != "" {
		p, ok := supershape.LookupPreset(c.Preset)
		if !ok {
			return Config{}, &supershape.ConfigError{Field: "preset", Msg: fmt.Sprintf("unknown preset %q", c.Preset)}
		}
		c.Long, c.Lat = p.Long, p.Lat
		c.Preset = ""
	}
	if c.Sync {
		c.Lat = c.Long
	}
	return c, nil
}

// Validate checks c without building anything. It reports the same errors
// [Config.Build] would report before sampling.
func (c Config) Validate() error {
	c, err := c.Resolve()
	if err != nil {
		return err
	}
	if err := c.Resolution.Validate(); err != nil {
		return err
	}
	if s := c.Scale.Vec3(); !s.IsFinite() {
		return &supershape.ConfigError{Field: "scale", Msg: fmt.Sprintf("%s is not finite", s)}
	}
	if t := c.WeldThreshold; c.Weld && (math.IsNaN(t) || math.IsInf(t, 0) || t < 0) {
		return &supershape.ConfigError{Field: "weld threshold", Msg: fmt.Sprintf("%g is not a finite non-negative distance", t)}
	}
	if c.Subdivide < 0 {
		return &supershape.ConfigError{Field: "subdivision levels", Msg: fmt.Sprintf("got %d, want a non-negative count", c.Subdivide)}
	}
	if err := c.Long.Validate(); err != nil {
		return fmt.Errorf("config: longitude: %w", err)
	}
	if err := c.Lat.Validate(); err != nil {
		return fmt.Errorf("config: latitude: %w", err)
	}
	return nil
}

// Build runs the whole pipeline described by c: build the supershape, weld
// it if requested, then subdivide it.
func (c Config) Build() (supershape.Mesh, error) {
	if err := c.Validate(); err != nil {
		return supershape.Mesh{}, err
	}
	c, _ = c.Resolve()

	m, err := supershape.BuildOpt(c.Long, c.Lat, c.Resolution, c.Scale.Vec3(), supershape.BuildOptions{
		Workers: c.Workers,
	})
	if err != nil {
		return supershape.Mesh{}, err
	}
	if c.Weld {
		m, err = m.Weld(c.WeldThreshold)
		if err != nil {
			return supershape.Mesh{}, err
		}
	}
	if c.Subdivide > 0 {
		scheme := subdiv.SchemeLinear
		if c.Smooth {
			scheme = subdiv.SchemeCatmullClark
		}
		m, err = subdiv.Subdivide(m, c.Subdivide, scheme)
		if err != nil {
			return supershape.Mesh{}, err
		}
	}
	supershape.Logger().Debug("config: built pipeline",
		"weld", c.Weld,
		"subdivide", c.Subdivide,
		"vertices", len(m.Vertices),
		"faces", len(m.Faces))
	return m, nil
}
