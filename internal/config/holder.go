package config

import (
	"fmt"
	"sync/atomic"
)

// Holder publishes a single Configuration. It moves from uninitialized to
// initialized exactly once; the stored value is never replaced.
type Holder struct {
	value atomic.Pointer[Configuration]
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Load reads and parses the file at path and stores the result. It fails
// with ErrAlreadyInitialized if a value is already present, in which case
// the file is not read.
func (h *Holder) Load(path string) error {
	if h.Initialized() {
		return ErrAlreadyInitialized
	}

	cfg, err := ReadFile(path)
	if err != nil {
		return err
	}
	return h.Set(cfg)
}

// Set stores cfg under the same write-once rule as Load. The holder keeps
// its own copy so later changes to cfg are not observed.
func (h *Holder) Set(cfg *Configuration) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil configuration", ErrParse)
	}
	if !h.value.CompareAndSwap(nil, cfg.Clone()) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Get returns the stored configuration. Every call returns the same pointer.
func (h *Holder) Get() (*Configuration, error) {
	cfg := h.value.Load()
	if cfg == nil {
		return nil, ErrNotInitialized
	}
	return cfg, nil
}

// MustGet is like Get but panics before initialization.
func (h *Holder) MustGet() *Configuration {
	cfg, err := h.Get()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Initialized reports whether a configuration has been stored.
func (h *Holder) Initialized() bool {
	return h.value.Load() != nil
}

var std = NewHolder()

// Default returns the process-wide holder used by Load and Get.
func Default() *Holder {
	return std
}

// Load initializes the process-wide configuration from path.
func Load(path string) error {
	return std.Load(path)
}

// Get returns the process-wide configuration.
func Get() (*Configuration, error) {
	return std.Get()
}

// MustGet returns the process-wide configuration or panics.
func MustGet() *Configuration {
	return std.MustGet()
}
