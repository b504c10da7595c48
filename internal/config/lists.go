package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ListsRegistry holds the named task files a user switches between
type ListsRegistry struct {
	Lists       []List `json:"lists"`
	DefaultList string `json:"defaultList"`
}

// List is a named task file
type List struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var (
	// ErrListNotFound is returned when a list doesn't exist in the registry
	ErrListNotFound = errors.New("list not found")
	// ErrDuplicateList is returned when trying to add a list that already exists
	ErrDuplicateList = errors.New("list already exists")
	// ErrEmptyName is returned when the list name is empty
	ErrEmptyName = errors.New("list name cannot be empty")
	// ErrEmptyPath is returned when the list path is empty
	ErrEmptyPath = errors.New("list path cannot be empty")
	// ErrBadExtension is returned for task files the store cannot read
	ErrBadExtension = errors.New("list path must end in .json, .yaml or .yml")
)

// LoadListsRegistry loads the lists registry from disk
// Returns an empty registry if the file doesn't exist
func LoadListsRegistry() (*ListsRegistry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ListsRegistry{Lists: []List{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var registry ListsRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, err
	}
	return &registry, nil
}

// SaveListsRegistry saves the lists registry to disk
func SaveListsRegistry(reg *ListsRegistry) error {
	path, err := registryPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Add registers a task file under name
func (r *ListsRegistry) Add(name, path string) error {
	if name == "" {
		return ErrEmptyName
	}
	if path == "" {
		return ErrEmptyPath
	}
	if !hasStoreExtension(path) {
		return ErrBadExtension
	}

	for _, l := range r.Lists {
		if l.Name == name {
			return ErrDuplicateList
		}
	}

	r.Lists = append(r.Lists, List{Name: name, Path: filepath.Clean(path)})

	// Set as default if it's the first list
	if len(r.Lists) == 1 {
		r.DefaultList = name
	}
	return nil
}

// Remove removes a list from the registry; the task file is left on disk
func (r *ListsRegistry) Remove(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	found := false
	for i, l := range r.Lists {
		if l.Name == name {
			r.Lists = append(r.Lists[:i], r.Lists[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrListNotFound
	}

	if r.DefaultList == name {
		r.DefaultList = ""
		if len(r.Lists) > 0 {
			r.DefaultList = r.Lists[0].Name
		}
	}
	return nil
}

// SetDefault sets the default list
func (r *ListsRegistry) SetDefault(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := r.Get(name); err != nil {
		return err
	}
	r.DefaultList = name
	return nil
}

// Get retrieves a list by name
func (r *ListsRegistry) Get(name string) (*List, error) {
	for _, l := range r.Lists {
		if l.Name == name {
			return &l, nil
		}
	}
	return nil, ErrListNotFound
}

// GetDefault returns the default list, or nil if none is set
func (r *ListsRegistry) GetDefault() *List {
	if r.DefaultList == "" {
		return nil
	}
	l, err := r.Get(r.DefaultList)
	if err != nil {
		return nil
	}
	return l
}

// Resolve applies the named list, or the default list when name is empty,
// to cfg's store path. An empty registry leaves cfg untouched.
func (r *ListsRegistry) Resolve(cfg *Config, name string) error {
	if name == "" {
		if l := r.GetDefault(); l != nil {
			cfg.Store.Path = l.Path
		}
		return nil
	}
	l, err := r.Get(name)
	if err != nil {
		return err
	}
	cfg.Store.Path = l.Path
	return nil
}

// registryPath returns the path to the lists registry file.
// It is a variable so tests can redirect it.
var registryPath = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "aurora", "lists.json"), nil
}

func hasStoreExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
