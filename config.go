package depot

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// DefaultMaxRecords is the global record ceiling until SetMaxRecords is called
const DefaultMaxRecords = 1 << 22

// Config holds global configuration shared by every store and manager
var Config config = config{
	maxRecords: DefaultMaxRecords,
	logger:     zerolog.Nop(),
}

type config struct {
	maxRecords int
	logger     zerolog.Logger
}

// SetLogger replaces the logger managers fall back to when none is given
func (c *config) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// SetMaxRecords changes the absolute record ceiling for field stores. Stores
// that already hold more records keep them but can no longer grow.
func (c *config) SetMaxRecords(n int) error {
	if n <= 0 {
		return InvalidConfigError{Reason: "max records must be positive"}
	}
	c.maxRecords = n
	return nil
}

func (c *config) MaxRecords() int {
	return c.maxRecords
}

func (c *config) Logger() zerolog.Logger {
	return c.logger
}

// ManagerConfig sizes a component manager. All values are fixed for the
// lifetime of the manager.
type ManagerConfig struct {
	InitialCapacity int `config:"DEPOT_INITIAL_CAPACITY"`
	// MaxCapacity bounds entity IDs, which must be below it
	MaxCapacity int `config:"DEPOT_MAX_CAPACITY"`
	// MaxEntities caps how many entities may hold the component at once.
	// Zero means MaxCapacity.
	MaxEntities int `config:"DEPOT_MAX_ENTITIES"`
}

// DefaultManagerConfig is the base LoadManagerConfig overlays the environment on
var DefaultManagerConfig = ManagerConfig{
	InitialCapacity: 64,
	MaxCapacity:     4096,
}

// LoadManagerConfig reads DEPOT_INITIAL_CAPACITY, DEPOT_MAX_CAPACITY and
// DEPOT_MAX_ENTITIES on top of DefaultManagerConfig and validates the result.
func LoadManagerConfig() (ManagerConfig, error) {
	cfg := DefaultManagerConfig
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return ManagerConfig{}, eris.Wrap(err, "failed to load manager config from env")
	}
	if err := cfg.Validate(); err != nil {
		return ManagerConfig{}, err
	}
	return cfg, nil
}

func (mc ManagerConfig) Validate() error {
	switch {
	case mc.InitialCapacity <= 0:
		return InvalidConfigError{Reason: "initial capacity must be positive"}
	case mc.MaxCapacity <= 0:
		return InvalidConfigError{Reason: "max capacity must be positive"}
	case mc.InitialCapacity > mc.MaxCapacity:
		return InvalidConfigError{Reason: "initial capacity exceeds max capacity"}
	case mc.MaxCapacity > Config.maxRecords:
		return InvalidConfigError{Reason: "max capacity exceeds the global record ceiling"}
	case mc.MaxEntities < 0:
		return InvalidConfigError{Reason: "max entities must not be negative"}
	case mc.MaxEntities > mc.MaxCapacity:
		return InvalidConfigError{Reason: "max entities exceeds max capacity"}
	}
	return nil
}

func (mc ManagerConfig) maxEntities() int {
	if mc.MaxEntities == 0 {
		return mc.MaxCapacity
	}
	return mc.MaxEntities
}
