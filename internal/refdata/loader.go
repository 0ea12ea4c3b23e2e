package refdata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// listFile is the YAML fixture shape for controlled lists:
//
//	lists:
//	  - name: countries
//	    pinned: ZA
//	    entries:
//	      - {code: ZA, label: South Africa, is_active: true, sort_order: 0}
type listFile struct {
	Lists []SeedList `yaml:"lists"`
}

// LoadSeedLists reads controlled lists from a YAML stream.
func LoadSeedLists(r io.Reader) ([]SeedList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read list fixture: %w", err)
	}

	var file listFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse list fixture: %w", err)
	}
	if len(file.Lists) == 0 {
		return nil, fmt.Errorf("list fixture contains no lists")
	}
	for _, list := range file.Lists {
		if list.Name == "" {
			return nil, fmt.Errorf("list fixture contains a list without a name")
		}
	}
	return file.Lists, nil
}

// LoadSeedFile reads controlled lists from a YAML file on disk.
func LoadSeedFile(path string) ([]SeedList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list fixture %s: %w", path, err)
	}
	defer f.Close()
	return LoadSeedLists(f)
}

// LoadRegistry builds a registry from a YAML stream of controlled lists.
func LoadRegistry(r io.Reader) (*Registry, error) {
	lists, err := LoadSeedLists(r)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry()
	for _, list := range lists {
		reg.Register(list.Name, list.Entries, list.Pinned)
	}
	return reg, nil
}

// LoadRegistryFile reads controlled lists from a YAML file on disk.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list fixture %s: %w", path, err)
	}
	defer f.Close()
	return LoadRegistry(f)
}
