// Package repository loads named locator maps shared across automation
// scripts. A repository file is YAML mapping names to locator strings,
// optionally including other repository files:
//
//	include:
//	  - common.yaml
//	locators:
//	  ok-button: xpath=//Button[@text='Ok']
//	  user-field: automationId=userName
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/autolab-dev/uia-runner/pkg/locator"
)

// file is the YAML shape of one repository file.
type file struct {
	Include  []string          `yaml:"include"`
	Locators map[string]string `yaml:"locators"`
}

// Repository is a merged, named locator map.
type Repository struct {
	locators map[string]string
	sources  map[string]string // locator name -> defining file
}

// Load reads a repository file and all of its includes. Includes are
// resolved relative to the including file; a name defined in two files is
// an error, and include cycles are detected.
func Load(path string) (*Repository, error) {
	repo := &Repository{
		locators: make(map[string]string),
		sources:  make(map[string]string),
	}
	if err := repo.loadFile(path, nil); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *Repository) loadFile(path string, chain []string) error {
	for _, ancestor := range chain {
		if ancestor == path {
			cycle := append(chain, path)
			return fmt.Errorf("circular include detected: %s", strings.Join(cycle, " -> "))
		}
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path is a user-provided repository file
	if err != nil {
		return fmt.Errorf("failed to read repository: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%s: invalid repository: %w", path, err)
	}

	newChain := append(chain, path)
	baseDir := filepath.Dir(path)
	for _, inc := range f.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(baseDir, incPath)
		}
		if err := r.loadFile(incPath, newChain); err != nil {
			return err
		}
	}

	for name, loc := range f.Locators {
		if prev, ok := r.sources[name]; ok {
			return fmt.Errorf("locator %q defined in both %s and %s", name, prev, path)
		}
		r.locators[name] = loc
		r.sources[name] = path
	}

	return nil
}

// Get returns the locator string registered under name.
func (r *Repository) Get(name string) (string, error) {
	loc, ok := r.locators[name]
	if !ok {
		return "", fmt.Errorf("unknown locator name %q", name)
	}
	return loc, nil
}

// Names returns all registered names, sorted.
func (r *Repository) Names() []string {
	names := make([]string, 0, len(r.locators))
	for name := range r.locators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered locators.
func (r *Repository) Len() int {
	return len(r.locators)
}

// ValidationError is a validation failure with file and name context.
type ValidationError struct {
	File    string
	Name    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: locator %q: %s", e.File, e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Result contains the outcome of validating a repository.
type Result struct {
	// Names lists the validated locator names.
	Names []string
	// Errors contains all validation errors found.
	Errors []error
}

// IsValid returns true if there are no validation errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate loads a repository file and parses every locator in it,
// collecting all errors instead of stopping at the first.
func Validate(path string) *Result {
	result := &Result{}

	repo, err := Load(path)
	if err != nil {
		result.Errors = append(result.Errors, &ValidationError{
			File:    path,
			Message: err.Error(),
		})
		return result
	}

	for _, name := range repo.Names() {
		loc := repo.locators[name]
		if _, err := locator.Parse(loc); err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				File:    repo.sources[name],
				Name:    name,
				Message: err.Error(),
			})
			continue
		}
		result.Names = append(result.Names, name)
	}

	return result
}
