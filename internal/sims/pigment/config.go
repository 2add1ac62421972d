package pigment

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"difgrow/internal/core"
	"difgrow/internal/lattice"
	"difgrow/internal/reaction"
)

// ErrConfig is wrapped by every configuration error.
var ErrConfig = core.ErrConfig

// ErrUnknownKey reports an override or config-file key that maps to no
// parameter.
var ErrUnknownKey = fmt.Errorf("%w: unknown parameter", core.ErrConfig)

// InitConfig selects the initial-condition policy and its parameters.
type InitConfig struct {
	Policy    string  `toml:"policy"`
	Bandwidth int     `toml:"bandwidth"`
	IridRatio float64 `toml:"irid_ratio"`
}

// Config controls a pigment simulation run. It is treated as immutable once a
// Simulation has been built from it.
type Config struct {
	Rows int     `toml:"rows"`
	Cols int     `toml:"cols"`
	H    float64 `toml:"h"`

	PerCycle  int `toml:"per_cycle"`
	NumCycles int `toml:"num_cycles"`

	Seed int64 `toml:"seed"`

	Rates reaction.RateConstants `toml:"rates"`
	Init  InitConfig             `toml:"init"`
}

// DefaultConfig returns the standard configuration: a 100×100 lattice,
// activation distance 15 and 10^2 cycles of 10^7 trials.
func DefaultConfig() Config {
	return Config{
		Rows:      100,
		Cols:      100,
		H:         15,
		PerCycle:  10_000_000,
		NumCycles: 100,
		Seed:      1337,
		Rates:     reaction.DefaultRates(),
		Init: InitConfig{
			Policy:    lattice.PolicyBasic,
			Bandwidth: 1,
			IridRatio: 0,
		},
	}
}

// Trials returns the total trial budget of a run.
func (c Config) Trials() int64 { return int64(c.NumCycles) * int64(c.PerCycle) }

// Set parses value into the parameter named key. Keys match the flag names
// and the flattened TOML keys: rows, cols, h, per_cycle, num_cycles, seed,
// init, bandwidth, irid_ratio and the rate keys bx, bm, dx, dm, sm, sx, lx.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	parseInt := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", core.ErrConfig, key, value)
		}
		*dst = v
		return nil
	}
	parseFloat := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", core.ErrConfig, key, value)
		}
		*dst = v
		return nil
	}

	switch key {
	case "rows":
		return parseInt(&c.Rows)
	case "cols":
		return parseInt(&c.Cols)
	case "h":
		return parseFloat(&c.H)
	case "per_cycle":
		return parseInt(&c.PerCycle)
	case "num_cycles":
		return parseInt(&c.NumCycles)
	case "seed":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: seed=%q is not an integer", core.ErrConfig, value)
		}
		c.Seed = v
		return nil
	case "init":
		c.Init.Policy = value
		return nil
	case "bandwidth":
		return parseInt(&c.Init.Bandwidth)
	case "irid_ratio":
		return parseFloat(&c.Init.IridRatio)
	}

	var rate float64
	if err := parseFloat(&rate); err != nil {
		if isRateKey(key) {
			return err
		}
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	if !c.Rates.Set(key, rate) {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	return nil
}

func isRateKey(key string) bool {
	for _, e := range reaction.Events() {
		if e.String() == key {
			return true
		}
	}
	return false
}

// FromMap populates the config from a string map (flag-style key/value
// pairs) on top of the defaults. Keys are applied in sorted order and all
// parse failures are reported together.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if err := c.Apply(cfg); err != nil {
		return c, err
	}
	return c, nil
}

// Apply overrides fields of c from kv.
func (c *Config) Apply(kv map[string]string) error {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var errs []error
	for _, k := range keys {
		if err := c.Set(k, kv[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFile decodes a TOML file on top of the defaults. Keys that do not map
// to a field are rejected.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("%w: %s: %v", core.ErrConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	return c, nil
}

// Validate reports every problem with the configuration at once. A run must
// not start unless Validate returns nil.
func (c Config) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Cols <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %dx%d", lattice.ErrInvalidDimensions, c.Rows, c.Cols))
	}
	if !(c.H > 0) || math.IsInf(c.H, 0) {
		errs = append(errs, fmt.Errorf("%w: activation distance h must be positive, got %v", core.ErrConfig, c.H))
	}
	if c.PerCycle <= 0 {
		errs = append(errs, fmt.Errorf("%w: per_cycle must be positive, got %d", core.ErrConfig, c.PerCycle))
	}
	if c.NumCycles <= 0 {
		errs = append(errs, fmt.Errorf("%w: num_cycles must be positive, got %d", core.ErrConfig, c.NumCycles))
	}
	if err := c.Rates.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Init.Policy {
	case lattice.PolicyBand:
		if c.Rows > 0 && (c.Init.Bandwidth <= 0 || c.Init.Bandwidth > c.Rows) {
			errs = append(errs, fmt.Errorf("%w: got %d for %d rows", lattice.ErrBandwidth, c.Init.Bandwidth, c.Rows))
		}
	case lattice.PolicyRandom:
		if !(c.Init.IridRatio >= 0 && c.Init.IridRatio <= 1) {
			errs = append(errs, fmt.Errorf("%w: got %v", lattice.ErrIridRatio, c.Init.IridRatio))
		}
	default:
		if _, err := lattice.Policy(c.Init.Policy); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Bind attaches the configuration to the provided FlagSet. Flag names match
// the keys accepted by Set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "lattice rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "lattice columns")
	fs.Float64Var(&c.H, "h", c.H, "long-range activation distance")
	fs.IntVar(&c.PerCycle, "per_cycle", c.PerCycle, "trials per cycle")
	fs.IntVar(&c.NumCycles, "num_cycles", c.NumCycles, "number of cycles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.StringVar(&c.Init.Policy, "init", c.Init.Policy, "initial condition: "+strings.Join(lattice.PolicyNames(), ", "))
	fs.IntVar(&c.Init.Bandwidth, "bandwidth", c.Init.Bandwidth, "iridophore band height for -init=band")
	fs.Float64Var(&c.Init.IridRatio, "irid_ratio", c.Init.IridRatio, "iridophore probability for -init=random")
	fs.Float64Var(&c.Rates.Bx, "bx", c.Rates.Bx, "birth rate of xanthophores")
	fs.Float64Var(&c.Rates.Bm, "bm", c.Rates.Bm, "birth rate of melanophores")
	fs.Float64Var(&c.Rates.Dx, "dx", c.Rates.Dx, "death rate of xanthophores")
	fs.Float64Var(&c.Rates.Dm, "dm", c.Rates.Dm, "death rate of melanophores")
	fs.Float64Var(&c.Rates.Sm, "sm", c.Rates.Sm, "short-range kill of xanthophores by melanophores")
	fs.Float64Var(&c.Rates.Sx, "sx", c.Rates.Sx, "short-range kill of melanophores by xanthophores")
	fs.Float64Var(&c.Rates.Lx, "lx", c.Rates.Lx, "long-range activation strength")
}
