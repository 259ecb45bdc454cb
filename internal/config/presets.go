package config

import "sort"

type Preset struct {
	Description string
	Hot, Cold   string
}

var Presets = map[string]Preset{
	"reference":  {Description: "textbook example, 25% efficient", Hot: "400", Cold: "300"},
	"steam":      {Description: "boiling water against room temperature", Hot: "373.15", Cold: "293.15"},
	"geothermal": {Description: "hot spring against a cool river", Hot: "453", Cold: "303"},
	"cryogenic":  {Description: "liquid nitrogen against liquid hydrogen", Hot: "77", Cold: "20"},
	"stalled":    {Description: "no temperature gradient, the engine halts", Hot: "300", Cold: "300"},
	"blank":      {Description: "empty fields, waiting for input"},
}

// GetPreset returns the default config with the preset's temperatures, or nil
// if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Hot, cfg.Cold = p.Hot, p.Cold
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
