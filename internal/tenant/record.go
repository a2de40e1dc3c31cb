package tenant

import (
	"fmt"
	"os"
	"strconv"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/tenantrouter/internal/config"
)

const recordExt = ".yaml"

// Record is the structured copy of a generated route, kept so inventory
// does not depend on the config file staying in its generated shape.
type Record struct {
	ID        string    `yaml:"id"`
	Domain    string    `yaml:"domain"`
	Port      int       `yaml:"port"`
	Config    string    `yaml:"config"`
	CreatedAt time.Time `yaml:"created_at"`
}

// RecordStore reads and writes one YAML file per domain.
type RecordStore struct {
	dir string
}

// NewRecordStore returns a store rooted at dir, or nil when dir is empty.
// A nil *RecordStore is valid and stores nothing.
func NewRecordStore(dir string) *RecordStore {
	if dir == "" {
		return nil
	}
	return &RecordStore{dir: dir}
}

func (s *RecordStore) path(domain string) (string, error) {
	if err := validateDomain(domain); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(s.dir, domain+recordExt)
}

// Save writes r, replacing any previous record for the same domain.
func (s *RecordStore) Save(r *Record) error {
	if s == nil {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	path, err := s.path(r.Domain)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Load returns the record for domain, or nil if none exists.
func (s *RecordStore) Load(domain string) (*Record, error) {
	if s == nil {
		return nil, nil
	}

	path, err := s.path(domain)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", path, err)
	}
	return &r, nil
}

// fill copies record values into the fields of route that are unknown.
func (r *Record) fill(route *config.Route) {
	if route.ID == config.Unknown && r.ID != "" {
		route.ID = r.ID
	}
	if route.Domain == config.Unknown && r.Domain != "" {
		route.Domain = r.Domain
	}
	if route.Port == config.Unknown && r.Port > 0 {
		route.Port = strconv.Itoa(r.Port)
	}
}
