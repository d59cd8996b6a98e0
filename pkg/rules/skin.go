package rules

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
)

// DefaultPreset names the preset used by the demo run and the
// interactive "default" answer.
const DefaultPreset = "default"

//go:embed knowledge/skin.yaml
var skinKnowledge []byte

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the built-in skin diagnosis knowledge base.
// It is parsed once per process.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Load(bytes.NewReader(skinKnowledge))
		if err != nil {
			panic(fmt.Sprintf("embedded knowledge base is invalid: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}
