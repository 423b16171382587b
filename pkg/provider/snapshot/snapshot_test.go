package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

const sampleXML = `
<Window Name="Settings">
  <Pane ClassName="SettingsPane">
    <Button AutomationId="okBtn" Name="Ok"/>
    <Button AutomationId="cancelBtn" Name="Cancel"/>
  </Pane>
  <Text Name="Footer"/>
</Window>`

func TestParse(t *testing.T) {
	root, err := Parse(sampleXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.ControlType() != core.ControlTypeWindow {
		t.Errorf("root control type = %v, want Window", root.ControlType())
	}
	if root.Name() != "Settings" {
		t.Errorf("root name = %q, want Settings", root.Name())
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	pane := root.Children[0]
	if pane.ControlType() != core.ControlTypePane {
		t.Errorf("first child control type = %v, want Pane", pane.ControlType())
	}
	if pane.ClassName() != "SettingsPane" {
		t.Errorf("pane class name = %q", pane.ClassName())
	}
	if len(pane.Children) != 2 {
		t.Fatalf("pane has %d children, want 2", len(pane.Children))
	}

	ok := pane.Children[0]
	if ok.AutomationID() != "okBtn" || ok.Name() != "Ok" {
		t.Errorf("unexpected first button: %s", ok)
	}
}

func TestParse_LinksParentsAndDepths(t *testing.T) {
	root, err := Parse(sampleXML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Parent != nil || root.Depth != 0 {
		t.Errorf("root parent/depth = %v/%d, want nil/0", root.Parent, root.Depth)
	}
	pane := root.Children[0]
	if pane.Parent != root || pane.Depth != 1 {
		t.Errorf("pane parent/depth wrong: %v/%d", pane.Parent, pane.Depth)
	}
	btn := pane.Children[0]
	if btn.Parent != pane || btn.Depth != 2 {
		t.Errorf("button parent/depth wrong: %v/%d", btn.Parent, btn.Depth)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"empty input", ""},
		{"unknown tag", `<Window><Widget/></Window>`},
		{"broken xml", `<Window><Button></Window>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.xml); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Name() != "Settings" {
		t.Errorf("root name = %q", root.Name())
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProvider_FindFirstDescendant(t *testing.T) {
	root, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}
	p := NewProvider()
	ctx := context.Background()

	el, err := p.FindFirstDescendant(ctx, root, core.Filter{ControlType: core.ControlTypeButton})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el == nil || el.AutomationID() != "okBtn" {
		t.Errorf("got %v, want the okBtn button", el)
	}

	// Root itself is excluded from the search.
	el, err = p.FindFirstDescendant(ctx, root, core.Filter{ControlType: core.ControlTypeWindow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el != nil {
		t.Errorf("root should be excluded, got %v", el)
	}

	el, err = p.FindFirstDescendant(ctx, root, core.Filter{
		Constraints: []core.Constraint{{Attr: core.AttrText, Value: "Nothing"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el != nil {
		t.Errorf("expected nil for no match, got %v", el)
	}
}

func TestProvider_FindAllDescendants(t *testing.T) {
	root, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}
	p := NewProvider()
	ctx := context.Background()

	all, err := p.FindAllDescendants(ctx, root, core.Filter{ControlType: core.ControlTypeButton})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"okBtn", "cancelBtn"}
	if len(all) != len(want) {
		t.Fatalf("got %d elements, want %d", len(all), len(want))
	}
	for i, el := range all {
		if el.AutomationID() != want[i] {
			t.Errorf("element %d: automationId %q, want %q", i, el.AutomationID(), want[i])
		}
	}

	// Empty filter enumerates the whole subtree in document order.
	all, err = p.FindAllDescendants(ctx, root, core.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d elements, want 4", len(all))
	}
}

func TestProvider_ForeignElement(t *testing.T) {
	p := NewProvider()
	if _, err := p.FindFirstDescendant(context.Background(), foreignElement{}, core.Filter{}); err == nil {
		t.Error("expected error for a non-snapshot element")
	}
}

type foreignElement struct{}

func (foreignElement) Name() string                  { return "" }
func (foreignElement) ControlType() core.ControlType { return core.ControlTypeNone }
func (foreignElement) AutomationID() string          { return "" }
func (foreignElement) ClassName() string             { return "" }

func TestElement_String(t *testing.T) {
	root, err := Parse(`<Button Name="Ok" AutomationId="okBtn" ClassName="Btn"/>`)
	if err != nil {
		t.Fatal(err)
	}
	s := root.String()
	for _, part := range []string{"Button", `"Ok"`, "automationId=okBtn", "className=Btn"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}
