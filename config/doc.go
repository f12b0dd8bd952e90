// Package config loads session configuration from YAML: engine tuning plus
// the participants whose manifests are announced at startup. It exists for
// the demo CLI and any embedding application that wants sessions declared in
// files rather than code.
package config
