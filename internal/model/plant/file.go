package plant

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Plants []Plant `yaml:"plants"`
}

// LoadFile reads a YAML plant catalog:
//
//	plants:
//	  - id: cassava
//	    name: Cassava
//	    healthStatus: healthy
func LoadFile(path string) ([]Plant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plant catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML plant catalog.
func Parse(data []byte) ([]Plant, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode plant catalog: %w", err)
	}
	if len(file.Plants) == 0 {
		return nil, errors.New("plant catalog is empty")
	}

	seen := make(map[string]struct{}, len(file.Plants))
	for i, p := range file.Plants {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("plant %d: id and name are required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("plant %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		switch p.HealthStatus {
		case "":
			p.HealthStatus = Healthy
		case Healthy, Moderate, Poor:
		default:
			return nil, fmt.Errorf("plant %q: unknown health status %q", p.ID, p.HealthStatus)
		}
		for _, issue := range p.Issues {
			switch issue.Severity {
			case SeverityLow, SeverityMedium, SeverityHigh:
			default:
				return nil, fmt.Errorf("plant %q: issue %q has unknown severity %q", p.ID, issue.Name, issue.Severity)
			}
		}
		file.Plants[i] = p
	}
	return file.Plants, nil
}

// Catalog returns the seeded plants, or the catalog at path when set.
func Catalog(path string) ([]Plant, error) {
	if strings.TrimSpace(path) == "" {
		return Seed(), nil
	}
	return LoadFile(path)
}
