package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "officefaker.yaml"

// File is the on-disk shape of the config file. Keys match the option names.
type File struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	DBName     string `yaml:"dbname"`
	Locations  int    `yaml:"locations"`
	Employees  int    `yaml:"employees"`
	Auto       bool   `yaml:"auto"`
	DontClean  bool   `yaml:"dontclean"`
	Continuous bool   `yaml:"continuous"`
	Seed       uint64 `yaml:"seed,omitempty"`
}

// Template returns a starting config for the given default port.
func Template(port int) File {
	return File{
		Host:      "127.0.0.1",
		Port:      port,
		User:      "office",
		DBName:    "office",
		Locations: 8,
		Employees: 8,
	}
}

// WriteTemplate writes tmpl to path, refusing to replace an existing file
// unless force is set.
func WriteTemplate(path string, tmpl File, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# officefaker configuration. Flags and environment variables override these values.\n")
	if err := os.WriteFile(path, append(header, data...), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// IsInitialized reports whether dir holds a config file.
func IsInitialized(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil
}
