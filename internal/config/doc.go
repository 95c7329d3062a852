// Package config defines the backup client's configuration schema and a
// write-once holder that publishes the parsed document to the rest of the
// process. The YAML file is the only source: there are no environment or flag
// overrides, and once a Configuration is stored it is never replaced.
package config
