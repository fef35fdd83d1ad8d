// README: JSON settings file support; the airline settings form persists this file.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"skyfare/internal/types"
)

// LoadFile reads a settings JSON file.
func LoadFile(path string) (Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Configuration{}, fmt.Errorf("%w: reading %s: %v", types.ErrConfiguration, path, err)
	}
	return FromRecord(v.AllSettings())
}

// WriteFile stores the configuration as an indented JSON record.
func WriteFile(path string, cfg Configuration) error {
	data, err := json.MarshalIndent(cfg.Record(), "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileSource re-reads the settings file on every Load.
type FileSource struct {
	Path string
}

func (f FileSource) Load(context.Context) (Configuration, error) {
	return LoadFile(f.Path)
}
