package config

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Configuration is the root of the backup client configuration document.
// Values returned by a Holder are shared across the process and must be
// treated as read-only; use Clone to obtain a private copy.
type Configuration struct {
	Client   ClientConfig    `yaml:"client"`
	Backup   BackupConfig    `yaml:"backup"`
	Server   ServerConfig    `yaml:"server"`
	Advanced *AdvancedConfig `yaml:"advanced,omitempty"`
}

// ClientConfig identifies this client instance.
type ClientConfig struct {
	// ID uniquely identifies the client to the backup server.
	ID string `yaml:"id"`
	// Name is a human-readable label.
	Name string `yaml:"name"`
}

// BackupConfig describes what is backed up and how often.
type BackupConfig struct {
	Mode BackupMode `yaml:"mode"`
	// WatchDirectories are scanned in the order they appear in the document.
	WatchDirectories []string `yaml:"watch_directories"`
	// Exclude patterns are passed through verbatim; their syntax is owned by
	// the component that walks the watch directories.
	Exclude         []string `yaml:"exclude,omitempty"`
	IntervalSeconds *Uint64  `yaml:"interval_seconds,omitempty"`
}

// Interval returns the backup cadence and whether one was configured.
func (b BackupConfig) Interval() (time.Duration, bool) {
	if b.IntervalSeconds == nil {
		return 0, false
	}
	return b.IntervalSeconds.Seconds(), true
}

// ServerConfig locates and authenticates against the backup server.
type ServerConfig struct {
	Address   string `yaml:"address"`
	AuthToken Secret `yaml:"auth_token"`
}

// AdvancedConfig carries optional tuning knobs. A nil field was not set in
// the document.
type AdvancedConfig struct {
	MaxFileSizeMB       *Uint64 `yaml:"max_file_size_mb,omitempty"`
	RetryAttempts       *Uint32 `yaml:"retry_attempts,omitempty"`
	RetryDelaySeconds   *Uint64 `yaml:"retry_delay_seconds,omitempty"`
	EnableNotifications *Bool   `yaml:"enable_notifications,omitempty"`
}

// NotificationsEnabled reports whether notifications were explicitly enabled.
func (a AdvancedConfig) NotificationsEnabled() bool {
	return a.EnableNotifications != nil && bool(*a.EnableNotifications)
}

// RetryDelay returns retry_delay_seconds as a duration and whether it was set.
func (a AdvancedConfig) RetryDelay() (time.Duration, bool) {
	if a.RetryDelaySeconds == nil {
		return 0, false
	}
	return a.RetryDelaySeconds.Seconds(), true
}

// MaxFileSizeBytes converts max_file_size_mb to bytes, saturating at
// math.MaxUint64.
func (a AdvancedConfig) MaxFileSizeBytes() (uint64, bool) {
	if a.MaxFileSizeMB == nil {
		return 0, false
	}
	mb := uint64(*a.MaxFileSizeMB)
	if mb > maxFileSizeMB {
		return math.MaxUint64, true
	}
	return mb << 20, true
}

// AdvancedOrZero returns the advanced block, or its zero value when the
// document omitted it.
func (c *Configuration) AdvancedOrZero() AdvancedConfig {
	if c == nil || c.Advanced == nil {
		return AdvancedConfig{}
	}
	return *c.Advanced
}

// Clone returns a deep copy of the configuration.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	out.Backup.WatchDirectories = slices.Clone(c.Backup.WatchDirectories)
	out.Backup.Exclude = slices.Clone(c.Backup.Exclude)
	out.Backup.IntervalSeconds = clonePtr(c.Backup.IntervalSeconds)
	if c.Advanced != nil {
		adv := AdvancedConfig{
			MaxFileSizeMB:       clonePtr(c.Advanced.MaxFileSizeMB),
			RetryAttempts:       clonePtr(c.Advanced.RetryAttempts),
			RetryDelaySeconds:   clonePtr(c.Advanced.RetryDelaySeconds),
			EnableNotifications: clonePtr(c.Advanced.EnableNotifications),
		}
		out.Advanced = &adv
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// BackupMode selects between full and incremental backups.
type BackupMode string

const (
	// ModeFull backs up every watched file regardless of prior state.
	ModeFull BackupMode = "full"
	// ModeIncremental transfers only files changed since the previous backup.
	ModeIncremental BackupMode = "incremental"
)

// ParseBackupMode matches s case-insensitively against the known modes.
func ParseBackupMode(s string) (BackupMode, error) {
	switch mode := BackupMode(strings.ToLower(s)); mode {
	case ModeFull, ModeIncremental:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown backup mode %q (expected %q or %q)", s, ModeFull, ModeIncremental)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *BackupMode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: backup.mode must be a scalar", value.Line)
	}
	mode, err := ParseBackupMode(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = mode
	return nil
}

const redacted = "[REDACTED]"

// Secret holds a credential. Its formatting, YAML and log encodings never
// include the value.
type Secret string

// Reveal returns the raw credential.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether the secret is non-empty.
func (s Secret) IsSet() bool {
	return s != ""
}

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

// GoString keeps %#v from printing the value.
func (s Secret) GoString() string {
	return fmt.Sprintf("config.Secret(%q)", s.String())
}

// MarshalYAML implements yaml.Marshaler.
func (s Secret) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Errors refer to the node's
// position only so the credential never reaches an error message.
func (s *Secret) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: secret must be a string", value.Line)
	}
	*s = Secret(value.Value)
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (c *Configuration) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("client_id", c.Client.ID)
	enc.AddString("client_name", c.Client.Name)
	enc.AddString("mode", string(c.Backup.Mode))
	if err := enc.AddArray("watch_directories", stringArray(c.Backup.WatchDirectories)); err != nil {
		return err
	}
	enc.AddInt("exclude_patterns", len(c.Backup.Exclude))
	if interval, ok := c.Backup.Interval(); ok {
		enc.AddDuration("interval", interval)
	}
	enc.AddString("server_address", c.Server.Address)
	enc.AddBool("auth_token_set", c.Server.AuthToken.IsSet())
	if c.Advanced != nil {
		return enc.AddObject("advanced", c.Advanced)
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (a *AdvancedConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if a.MaxFileSizeMB != nil {
		enc.AddUint64("max_file_size_mb", uint64(*a.MaxFileSizeMB))
	}
	if a.RetryAttempts != nil {
		enc.AddUint32("retry_attempts", uint32(*a.RetryAttempts))
	}
	if a.RetryDelaySeconds != nil {
		enc.AddUint64("retry_delay_seconds", uint64(*a.RetryDelaySeconds))
	}
	if a.EnableNotifications != nil {
		enc.AddBool("enable_notifications", bool(*a.EnableNotifications))
	}
	return nil
}

type stringArray []string

func (s stringArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range s {
		enc.AppendString(v)
	}
	return nil
}
