package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// maxSeconds is the largest second count a time.Duration can hold.
	maxSeconds = uint64(math.MaxInt64 / int64(time.Second))
	// maxFileSizeMB is the largest megabyte count that fits in a uint64 byte count.
	maxFileSizeMB = uint64(math.MaxUint64 >> 20)
)

// Uint64 is an unsigned integer that only decodes from a YAML integer
// scalar. Floats, negative numbers and strings are rejected.
type Uint64 uint64

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *Uint64) UnmarshalYAML(value *yaml.Node) error {
	v, err := parseUnsigned(value, 64)
	if err != nil {
		return err
	}
	*u = Uint64(v)
	return nil
}

// Seconds interprets u as a number of seconds, saturating at the largest
// representable duration.
func (u Uint64) Seconds() time.Duration {
	if uint64(u) > maxSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(u) * time.Second
}

// Uint32 is the 32-bit counterpart of Uint64.
type Uint32 uint32

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *Uint32) UnmarshalYAML(value *yaml.Node) error {
	v, err := parseUnsigned(value, 32)
	if err != nil {
		return err
	}
	*u = Uint32(v)
	return nil
}

// Bool only accepts the YAML 1.2 core booleans (true/false in lower,
// title or upper case); yes/no/on/off are rejected.
type Bool bool

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bool) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
		return fmt.Errorf("line %d: expected a boolean", value.Line)
	}
	switch value.Value {
	case "true", "True", "TRUE":
		*b = true
	case "false", "False", "FALSE":
		*b = false
	default:
		return fmt.Errorf("line %d: expected a boolean (true or false)", value.Line)
	}
	return nil
}

// parseUnsigned reports errors by line only, matching Secret.
func parseUnsigned(value *yaml.Node, bits int) (uint64, error) {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
		return 0, fmt.Errorf("line %d: expected an unsigned integer", value.Line)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(value.Value, "+"), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("line %d: expected an unsigned integer that fits in %d bits", value.Line, bits)
	}
	return v, nil
}
