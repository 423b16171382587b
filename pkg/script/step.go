// Package script handles parsing and execution of YAML automation scripts.
// A script is a list of keyword steps driven against one session.
package script

import "fmt"

// StepType represents the type of step.
type StepType string

// Step type constants.
const (
	StepClick        StepType = "click"
	StepDoubleClick  StepType = "doubleClick"
	StepRightClick   StepType = "rightClick"
	StepFocus        StepType = "focus"
	StepSetText      StepType = "setText"
	StepToggle       StepType = "toggle"
	StepAssertExists StepType = "assertExists"
	StepAssertText   StepType = "assertText"
	StepWaitFor      StepType = "waitFor"
	StepPressKey     StepType = "pressKey"
	StepScreenshot   StepType = "takeScreenshot"
)

// Step is the interface for all script steps.
type Step interface {
	Type() StepType
	Label() string
	Describe() string
}

// BaseStep contains common fields for all steps.
type BaseStep struct {
	StepType  StepType `yaml:"-"`
	StepLabel string   `yaml:"label"`
}

// Type returns the step type.
func (b *BaseStep) Type() StepType { return b.StepType }

// Label returns the step label.
func (b *BaseStep) Label() string { return b.StepLabel }

// Describe returns a human-readable description.
func (b *BaseStep) Describe() string { return string(b.StepType) }

// ClickStep clicks an element.
type ClickStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
}

// Describe returns a human-readable description.
func (s *ClickStep) Describe() string {
	return fmt.Sprintf("%s %s", s.StepType, s.Locator)
}

// FocusStep gives an element keyboard focus.
type FocusStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
}

// Describe returns a human-readable description.
func (s *FocusStep) Describe() string {
	return fmt.Sprintf("focus %s", s.Locator)
}

// SetTextStep replaces an element's text.
type SetTextStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
	Text     string `yaml:"text"`
}

// Describe returns a human-readable description.
func (s *SetTextStep) Describe() string {
	return fmt.Sprintf("setText %s = %q", s.Locator, s.Text)
}

// ToggleStep flips a toggleable element.
type ToggleStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
}

// Describe returns a human-readable description.
func (s *ToggleStep) Describe() string {
	return fmt.Sprintf("toggle %s", s.Locator)
}

// AssertExistsStep fails when the locator does not resolve.
type AssertExistsStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
}

// Describe returns a human-readable description.
func (s *AssertExistsStep) Describe() string {
	return fmt.Sprintf("assertExists %s", s.Locator)
}

// AssertTextStep fails when the element's text differs from the expected
// value.
type AssertTextStep struct {
	BaseStep `yaml:",inline"`
	Locator  string `yaml:"locator"`
	Expected string `yaml:"expected"`
}

// Describe returns a human-readable description.
func (s *AssertTextStep) Describe() string {
	return fmt.Sprintf("assertText %s == %q", s.Locator, s.Expected)
}

// WaitForStep polls the locator until it resolves or times out.
type WaitForStep struct {
	BaseStep  `yaml:",inline"`
	Locator   string `yaml:"locator"`
	TimeoutMs int    `yaml:"timeout"`
}

// Describe returns a human-readable description.
func (s *WaitForStep) Describe() string {
	return fmt.Sprintf("waitFor %s", s.Locator)
}

// PressKeyStep sends a named key to the focused element.
type PressKeyStep struct {
	BaseStep `yaml:",inline"`
	Key      string `yaml:"key"`
}

// Describe returns a human-readable description.
func (s *PressKeyStep) Describe() string {
	return fmt.Sprintf("pressKey %s", s.Key)
}

// ScreenshotStep captures the screen to a file.
type ScreenshotStep struct {
	BaseStep `yaml:",inline"`
	Path     string `yaml:"path"`
}

// Describe returns a human-readable description.
func (s *ScreenshotStep) Describe() string {
	if s.Path != "" {
		return fmt.Sprintf("takeScreenshot %s", s.Path)
	}
	return "takeScreenshot"
}
