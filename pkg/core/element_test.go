package core

import "testing"

type fakeElement struct {
	name         string
	automationID string
	className    string
	controlType  ControlType
}

func (f fakeElement) Name() string             { return f.name }
func (f fakeElement) ControlType() ControlType { return f.controlType }
func (f fakeElement) AutomationID() string     { return f.automationID }
func (f fakeElement) ClassName() string        { return f.className }

func TestFilter_Matches(t *testing.T) {
	el := fakeElement{
		name:         "Ok",
		automationID: "okBtn",
		className:    "Button",
		controlType:  ControlTypeButton,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches anything", Filter{}, true},
		{"control type match", Filter{ControlType: ControlTypeButton}, true},
		{"control type mismatch", Filter{ControlType: ControlTypeEdit}, false},
		{
			"text constraint matches the name",
			Filter{Constraints: []Constraint{{Attr: AttrText, Value: "Ok"}}},
			true,
		},
		{
			"text constraint is exact, not substring",
			Filter{Constraints: []Constraint{{Attr: AttrText, Value: "O"}}},
			false,
		},
		{
			"automation id constraint",
			Filter{Constraints: []Constraint{{Attr: AttrAutomationID, Value: "okBtn"}}},
			true,
		},
		{
			"class name constraint",
			Filter{Constraints: []Constraint{{Attr: AttrClassName, Value: "Button"}}},
			true,
		},
		{
			"constraints are conjunctive",
			Filter{Constraints: []Constraint{
				{Attr: AttrText, Value: "Ok"},
				{Attr: AttrAutomationID, Value: "other"},
			}},
			false,
		},
		{
			"type and constraints together",
			Filter{
				ControlType: ControlTypeButton,
				Constraints: []Constraint{{Attr: AttrText, Value: "Ok"}},
			},
			true,
		},
		{
			"unknown attribute never matches",
			Filter{Constraints: []Constraint{{Attr: Attribute("bogus"), Value: "x"}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(el); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
