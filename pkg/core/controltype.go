package core

import (
	"fmt"
	"strings"
)

// ControlType identifies the platform category of a UI element.
// Values match the UI Automation control type IDs (UIA_*ControlTypeId).
type ControlType int

// ControlTypeNone means "no control type filter".
const ControlTypeNone ControlType = 0

// Control type constants, in UIA ID order starting at 50000.
const (
	ControlTypeButton ControlType = 50000 + iota
	ControlTypeCalendar
	ControlTypeCheckBox
	ControlTypeComboBox
	ControlTypeEdit
	ControlTypeHyperlink
	ControlTypeImage
	ControlTypeListItem
	ControlTypeList
	ControlTypeMenu
	ControlTypeMenuBar
	ControlTypeMenuItem
	ControlTypeProgressBar
	ControlTypeRadioButton
	ControlTypeScrollBar
	ControlTypeSlider
	ControlTypeSpinner
	ControlTypeStatusBar
	ControlTypeTab
	ControlTypeTabItem
	ControlTypeText
	ControlTypeToolBar
	ControlTypeToolTip
	ControlTypeTree
	ControlTypeTreeItem
	ControlTypeCustom
	ControlTypeGroup
	ControlTypeThumb
	ControlTypeDataGrid
	ControlTypeDataItem
	ControlTypeDocument
	ControlTypeSplitButton
	ControlTypeWindow
	ControlTypePane
	ControlTypeHeader
	ControlTypeHeaderItem
	ControlTypeTable
	ControlTypeTitleBar
	ControlTypeSeparator
	ControlTypeSemanticZoom
	ControlTypeAppBar
)

// controlTypeNames lists the canonical tag names in UIA ID order.
// The index of a name is its ControlType minus 50000.
var controlTypeNames = []string{
	"Button",
	"Calendar",
	"CheckBox",
	"ComboBox",
	"Edit",
	"Hyperlink",
	"Image",
	"ListItem",
	"List",
	"Menu",
	"MenuBar",
	"MenuItem",
	"ProgressBar",
	"RadioButton",
	"ScrollBar",
	"Slider",
	"Spinner",
	"StatusBar",
	"Tab",
	"TabItem",
	"Text",
	"ToolBar",
	"ToolTip",
	"Tree",
	"TreeItem",
	"Custom",
	"Group",
	"Thumb",
	"DataGrid",
	"DataItem",
	"Document",
	"SplitButton",
	"Window",
	"Pane",
	"Header",
	"HeaderItem",
	"Table",
	"TitleBar",
	"Separator",
	"SemanticZoom",
	"AppBar",
}

// controlTypesByName maps lowercase tag names to control types.
var controlTypesByName = func() map[string]ControlType {
	m := make(map[string]ControlType, len(controlTypeNames))
	for i, name := range controlTypeNames {
		m[strings.ToLower(name)] = ControlType(50000 + i)
	}
	return m
}()

// ParseControlType resolves a tag name to a control type.
// Lookup is case-insensitive; unknown names fail with ErrUnknownControlType.
func ParseControlType(name string) (ControlType, error) {
	ct, ok := controlTypesByName[strings.ToLower(name)]
	if !ok {
		return ControlTypeNone, ErrUnknownControlType.WithMessage(
			fmt.Sprintf("unknown control type %q", name))
	}
	return ct, nil
}

// String returns the canonical tag name.
func (ct ControlType) String() string {
	if ct == ControlTypeNone {
		return "None"
	}
	idx := int(ct) - 50000
	if idx < 0 || idx >= len(controlTypeNames) {
		return fmt.Sprintf("ControlType(%d)", int(ct))
	}
	return controlTypeNames[idx]
}

// Valid reports whether ct is a known control type (None excluded).
func (ct ControlType) Valid() bool {
	idx := int(ct) - 50000
	return idx >= 0 && idx < len(controlTypeNames)
}
