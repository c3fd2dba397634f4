// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the docchat config directory
// (~/.docchat by default).
//
// Adapters:
//   - ConfigStore: TOML settings with dotted keys ("retrieval.k")
//   - PromptStore: user-editable prompt templates seeded from built-in defaults
package file
