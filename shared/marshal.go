package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
	"path"
	"strings"
)

// UnmarshalWithExt decodes yaml or json data, the format is picked by the file extension
func UnmarshalWithExt(data []byte, into interface{}, ext string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err := yaml.Unmarshal(data, into)
		if err != nil {
			return fmt.Errorf("failed to parse yaml due to the: %w", err)
		}
		return err
	default:
		err := json.Unmarshal(data, into)
		if err != nil {
			return fmt.Errorf("failed to parse json due to the: %w", err)
		}
		return err
	}
}

// Ext returns URL extension, yaml is assumed when no extension is present
func Ext(URL string) string {
	ext := path.Ext(URL)
	if ext == "" {
		return ".yaml"
	}
	return ext
}
