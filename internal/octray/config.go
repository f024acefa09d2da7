package octray

import (
	"bytes"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/octray/internal/octree"
)

// Vec3Cfg is a vector written as a three element YAML sequence.
type Vec3Cfg [3]Real

func (v Vec3Cfg) Vec() Vec3 { return octree.V(v[0], v[1], v[2]) }

func (v Vec3Cfg) isZero() bool { return v == Vec3Cfg{} }

type MaterialCfg struct {
	Color  RGB   `yaml:"color"`
	Opaque *bool `yaml:"opaque,omitempty"` // defaults to true
}

type VoxelCfg struct {
	Cell     [3]int `yaml:"cell"`
	Material string `yaml:"material"`
}

type EllipsoidCfg struct {
	Cell     [3]int  `yaml:"cell"`
	Radii    Vec3Cfg `yaml:"radii,omitempty"` // zero inscribes it in the cell
	Material string  `yaml:"material"`
}

type LightCfg struct {
	Name      string  `yaml:"name,omitempty"`
	Kind      string  `yaml:"kind"` // point, global or ambient
	Position  Vec3Cfg `yaml:"position,omitempty"`
	Direction Vec3Cfg `yaml:"direction,omitempty"`
	Intensity Real    `yaml:"intensity"`
}

type RayCfg struct {
	Name      string  `yaml:"name"`
	Origin    Vec3Cfg `yaml:"origin"`
	Direction Vec3Cfg `yaml:"direction"`
}

type BenchCfg struct {
	Workers    int `yaml:"workers,omitempty"`    // 0 means GOMAXPROCS
	Resolution int `yaml:"resolution,omitempty"` // rays per grid side
}

type Config struct {
	Depth      int                    `yaml:"depth,omitempty"`
	Center     Vec3Cfg                `yaml:"center,omitempty"`
	HalfExtent Real                   `yaml:"halfExtent,omitempty"`
	Materials  map[string]MaterialCfg `yaml:"materials"`
	Voxels     []VoxelCfg             `yaml:"voxels,omitempty"`
	Ellipsoids []EllipsoidCfg         `yaml:"ellipsoids,omitempty"`
	Lights     []LightCfg             `yaml:"lights,omitempty"`
	Rays       []RayCfg               `yaml:"rays,omitempty"`
	Bench      BenchCfg               `yaml:"bench,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene config %s", path)
	}
	debugLog("loaded config", "path", path, "depth", cfg.Depth, "voxels", len(cfg.Voxels), "ellipsoids", len(cfg.Ellipsoids), "lights", len(cfg.Lights), "rays", len(cfg.Rays))
	return cfg, nil
}

// ParseConfig decodes a YAML scene, rejecting unknown keys, and applies
// defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	// Defaults / validation
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Depth > MaxDepth {
		return nil, errors.Errorf("depth %d exceeds the maximum of %d", cfg.Depth, MaxDepth)
	}
	if cfg.HalfExtent <= 0 {
		cfg.HalfExtent = DefaultHalfExtent
	}
	if cfg.Bench.Resolution <= 0 {
		cfg.Bench.Resolution = BenchResolution
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	known := func(name string) error {
		if _, ok := c.Materials[name]; !ok {
			return errors.Errorf("unknown material %q (have %s)", name, strings.Join(c.materialNames(), ", "))
		}
		return nil
	}
	for i, v := range c.Voxels {
		if err := known(v.Material); err != nil {
			return errors.Wrapf(err, "voxel #%d", i)
		}
	}
	for i, e := range c.Ellipsoids {
		if err := known(e.Material); err != nil {
			return errors.Wrapf(err, "ellipsoid #%d", i)
		}
		if !e.Radii.isZero() && (e.Radii[0] <= 0 || e.Radii[1] <= 0 || e.Radii[2] <= 0) {
			return errors.Errorf("ellipsoid #%d: radii %v must be all positive or all zero", i, e.Radii)
		}
	}
	for i, l := range c.Lights {
		switch l.Kind {
		case "point", "ambient":
		case "global":
			if l.Direction.isZero() {
				return errors.Errorf("light #%d: global light needs a direction", i)
			}
		default:
			return errors.Errorf("light #%d: unknown kind %q", i, l.Kind)
		}
	}
	for i, r := range c.Rays {
		if r.Direction.isZero() {
			return errors.Errorf("ray #%d (%s): zero direction", i, r.Name)
		}
	}
	return nil
}

func (c *Config) materialNames() []string {
	names := make([]string, 0, len(c.Materials))
	for n := range c.Materials {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (c *Config) material(name string) Material {
	m := c.Materials[name]
	opaque := true
	if m.Opaque != nil {
		opaque = *m.Opaque
	}
	return Material{Name: name, Color: m.Color.clamp01(), Opaque: opaque}
}

// NamedRay is a configured query ray with a unit direction.
type NamedRay struct {
	Name      string
	Origin    Vec3
	Direction Vec3
}

// NamedLight pairs a light with its config name.
type NamedLight struct {
	Name string
	Light
}

// Scene is a built tree placed in world space plus what to do with it.
type Scene struct {
	Tree       *Tree
	Center     Vec3
	HalfExtent Vec3
	Depth      int
	Lights     []NamedLight
	Rays       []NamedRay
	Bench      BenchCfg
}

// BuildScene places every configured leaf in its grid cell and validates
// the resulting tree.
func BuildScene(cfg *Config) (*Scene, error) {
	h := cfg.HalfExtent
	s := &Scene{
		Center:     cfg.Center.Vec(),
		HalfExtent: octree.V(h, h, h),
		Depth:      cfg.Depth,
		Bench:      cfg.Bench,
	}
	b := octree.NewBuilder[Material]()
	for i, v := range cfg.Voxels {
		if err := b.SetCell(cfg.Depth, v.Cell[0], v.Cell[1], v.Cell[2], Voxel{Material: cfg.material(v.Material)}); err != nil {
			return nil, errors.Wrapf(err, "voxel #%d", i)
		}
	}
	for i, e := range cfg.Ellipsoids {
		leaf := Ellipsoid{Radii: e.Radii.Vec(), Material: cfg.material(e.Material)}
		if err := b.SetCell(cfg.Depth, e.Cell[0], e.Cell[1], e.Cell[2], leaf); err != nil {
			return nil, errors.Wrapf(err, "ellipsoid #%d", i)
		}
		if _, ext := s.Cell(e.Cell[0], e.Cell[1], e.Cell[2]); leaf.Radii.X > ext.X || leaf.Radii.Y > ext.Y || leaf.Radii.Z > ext.Z {
			return nil, errors.Errorf("ellipsoid #%d: radii %v exceed the cell half-extents %v", i, e.Radii, ext)
		}
	}

	s.Tree = b.Build()
	if err := s.Tree.Validate(s.Center, s.HalfExtent); err != nil {
		return nil, errors.Wrap(err, "invalid scene tree")
	}

	for i, l := range cfg.Lights {
		name := l.Name
		if name == "" {
			name = l.Kind + "#" + strconv.Itoa(i)
		}
		var light Light
		switch l.Kind {
		case "point":
			light = PointLight{Position: l.Position.Vec(), Power: l.Intensity}
		case "global":
			light = GlobalLight{Direction: l.Direction.Vec(), Power: l.Intensity}
		case "ambient":
			light = AmbientLight{Power: l.Intensity}
		}
		s.Lights = append(s.Lights, NamedLight{Name: name, Light: light})
	}
	for _, r := range cfg.Rays {
		s.Rays = append(s.Rays, NamedRay{Name: r.Name, Origin: r.Origin.Vec(), Direction: r.Direction.Vec().Normalize()})
	}
	debugLog("scene built", "leaves", b.Len(), "lights", len(s.Lights), "rays", len(s.Rays))
	return s, nil
}

// LoadScene reads and builds the scene at path.
func LoadScene(path string) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return BuildScene(cfg)
}
