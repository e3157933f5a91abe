// Package defaults provides embedded default assets (config, language table, examples).
package defaults

import _ "embed"

//go:embed default_config.json
var DefaultConfigJSON []byte

//go:embed languages.toml
var LanguagesTOML []byte

//go:embed examples.yaml
var ExamplesYAML []byte
