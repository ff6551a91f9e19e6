package configuration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownName is returned when a component file refers to a type or
	// service name the catalog does not know.
	ErrUnknownName = errors.New("unknown catalog name")

	// ErrInvalidLifetime is returned for a lifetime other than
	// "per-dependency" or "single-instance".
	ErrInvalidLifetime = errors.New("invalid lifetime")

	// ErrInvalidComponent is returned for structurally invalid components.
	ErrInvalidComponent = errors.New("invalid component")
)

// File is a parsed component file.
type File struct {
	Components []Component `yaml:"components"`
}

// Component describes one registration.
type Component struct {
	// Type is the catalog name of a constructor set or instance.
	Type string `yaml:"type"`

	// Services lists catalog service names the component is exposed as.
	Services []string `yaml:"services,omitempty"`

	Self                     bool   `yaml:"self,omitempty"`
	Lifetime                 string `yaml:"lifetime,omitempty"`
	PreserveExistingDefaults bool   `yaml:"preserveExistingDefaults,omitempty"`

	// Constructor pins the constructor by its parameter service names. An
	// explicit empty list pins the parameterless constructor.
	Constructor []string `yaml:"constructor,omitempty"`

	// Name registers every service in Services under this name instead of as
	// a default.
	Name string `yaml:"name,omitempty"`
}

// Parse decodes a component file. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse component file: %w", err)
	}

	for i, c := range f.Components {
		if c.Type == "" {
			return nil, fmt.Errorf("%w: component #%d has no type", ErrInvalidComponent, i)
		}
		if c.Name != "" && len(c.Services) == 0 {
			return nil, fmt.Errorf("%w: component #%d (%s) is named %q but lists no services",
				ErrInvalidComponent, i, c.Type, c.Name)
		}
	}

	return f, nil
}

// Load reads the component files in order and returns their components
// concatenated. Before parsing, ${VAR} references are expanded from the
// process environment, falling back to a .env file next to the component
// file.
func Load(paths ...string) (*File, error) {
	out := &File{}

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read component file %q: %w", path, err)
		}

		dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
		if err != nil {
			return nil, err
		}

		f, err := Parse([]byte(os.Expand(string(data), lookup(dotenv))))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out.Components = append(out.Components, f.Components...)
	}

	return out, nil
}

func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return vars, nil
}

func lookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}
