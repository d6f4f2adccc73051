package config

import (
	_ "embed"
)

//go:embed defaults/client.yaml
var defaultClientYAML []byte

// DefaultClientConfig returns the built-in client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Clock: ClockConfig{
			Hz: 30,
		},
		Net: NetConfig{
			MaxLine: 512,
		},
		Containers: ContainersConfig{
			MapOrder: 8,
		},
		Render: RenderConfig{
			ScaleX: 4,
			ScaleY: 8,
			LabelX: 0,
			LabelY: 0,
		},
		Input: InputConfig{
			ReleaseAfterTicks: 4,
			Keys: KeyBinding{
				Left:  []string{"left", "a"},
				Right: []string{"right", "d"},
				Shoot: []string{" ", "w"},
			},
		},
	}
}
