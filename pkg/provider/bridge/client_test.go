package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autolab-dev/uia-runner/pkg/core"
)

// newTestClient starts a bridge stub and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

// newSessionClient is newTestClient with an established session.
func newSessionClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	client := newTestClient(t, handler)
	client.sessionID = "test-session"
	return client
}

func writeValue(w http.ResponseWriter, value interface{}) {
	json.NewEncoder(w).Encode(map[string]interface{}{"value": value})
}

func TestClient_Status(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeValue(w, map[string]interface{}{"ready": true, "message": "ok"})
	})

	ready, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ready {
		t.Error("expected ready")
	}
}

func TestClient_CreateSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/session" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Capabilities Capabilities `json:"capabilities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.Capabilities.Application != "notepad.exe" {
			t.Errorf("application = %q", body.Capabilities.Application)
		}
		writeValue(w, map[string]string{"sessionId": "abc-123"})
	})

	err := client.CreateSession(context.Background(), Capabilities{Application: "notepad.exe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.SessionID() != "abc-123" {
		t.Errorf("session ID = %q, want abc-123", client.SessionID())
	}
	if !client.HasSession() {
		t.Error("expected an active session")
	}
}

func TestClient_CreateSessionMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, map[string]string{})
	})

	if err := client.CreateSession(context.Background(), Capabilities{}); err == nil {
		t.Error("expected error for missing session ID")
	}
}

func TestClient_DeleteSession(t *testing.T) {
	deleted := false
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "DELETE" && r.URL.Path == "/session/test-session" {
			deleted = true
		}
		writeValue(w, nil)
	})

	if err := client.DeleteSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("expected a DELETE request")
	}
	if client.HasSession() {
		t.Error("session ID should be cleared")
	}

	// Deleting again is a no-op, not an error.
	if err := client.DeleteSession(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_ServerUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.Status(context.Background())
	if !errors.Is(err, core.ErrServerUnreachable) {
		t.Errorf("got %v, want ErrServerUnreachable", err)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeValue(w, map[string]string{
			"error":   "no such element",
			"message": "stale element handle",
		})
	})

	err := client.Click(context.Background(), &Element{id: "el-1", client: client})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no such element") || !strings.Contains(err.Error(), "stale element handle") {
		t.Errorf("error %q should carry the bridge's error and message", err)
	}
}

func TestClient_Hierarchy(t *testing.T) {
	const xmlDump = `<Window Name="App"><Button Name="Ok"/></Window>`
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/test-session/hierarchy" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeValue(w, xmlDump)
	})

	got, err := client.Hierarchy(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != xmlDump {
		t.Errorf("hierarchy = %q", got)
	}
}

func TestClient_RequiresSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the bridge without a session")
	})
	ctx := context.Background()

	checks := map[string]error{
		"Hierarchy": func() error { _, err := client.Hierarchy(ctx); return err }(),
		"FindFirst": func() error { _, err := client.FindFirstDescendant(ctx, nil, core.Filter{}); return err }(),
		"FindAll":   func() error { _, err := client.FindAllDescendants(ctx, nil, core.Filter{}); return err }(),
		"Window":    func() error { _, err := client.ActiveWindow(ctx); return err }(),
		"Click":     client.Click(ctx, &Element{id: "x"}),
		"PressKey":  client.PressKey(ctx, "ENTER"),
	}
	for name, err := range checks {
		if !errors.Is(err, core.ErrNoSession) {
			t.Errorf("%s: got %v, want ErrNoSession", name, err)
		}
	}
}

func TestClient_FindFirstDescendant(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/session/test-session/element" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req findRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Root != "root-1" {
			t.Errorf("root = %q", req.Root)
		}
		if req.ControlType != "Button" {
			t.Errorf("controlType = %q", req.ControlType)
		}
		if len(req.Constraints) != 1 || req.Constraints[0].Attribute != "text" || req.Constraints[0].Value != "Ok" {
			t.Errorf("constraints = %+v", req.Constraints)
		}
		writeValue(w, elementRecord{
			ID: "el-7", Name: "Ok", ControlType: "Button", AutomationID: "okBtn",
		})
	})

	root := &Element{id: "root-1", client: client}
	filter := core.Filter{
		ControlType: core.ControlTypeButton,
		Constraints: []core.Constraint{{Attr: core.AttrText, Value: "Ok"}},
	}

	el, err := client.FindFirstDescendant(context.Background(), root, filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	be, ok := el.(*Element)
	if !ok {
		t.Fatalf("got %T, want *bridge.Element", el)
	}
	if be.ID() != "el-7" || be.Name() != "Ok" || be.AutomationID() != "okBtn" {
		t.Errorf("unexpected element: %+v", be)
	}
	if be.ControlType() != core.ControlTypeButton {
		t.Errorf("control type = %v", be.ControlType())
	}
}

func TestClient_FindFirstDescendantNoMatch(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, nil)
	})

	el, err := client.FindFirstDescendant(context.Background(), nil, core.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el != nil {
		t.Errorf("expected nil element, got %v", el)
	}
}

func TestClient_FindAllDescendants(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session/test-session/elements" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeValue(w, []elementRecord{
			{ID: "el-1", Name: "Ok", ControlType: "Button"},
			{ID: "el-2", Name: "Cancel", ControlType: "Button"},
		})
	})

	all, err := client.FindAllDescendants(context.Background(), nil, core.Filter{ControlType: core.ControlTypeButton})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d elements, want 2", len(all))
	}
	if all[0].(*Element).ID() != "el-1" || all[1].(*Element).ID() != "el-2" {
		t.Error("elements out of order")
	}
}

func TestClient_ActiveWindow(t *testing.T) {
	t.Run("window present", func(t *testing.T) {
		client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/session/test-session/window" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			writeValue(w, elementRecord{ID: "win-1", Name: "Main", ControlType: "Window"})
		})

		win, err := client.ActiveWindow(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if win.(*Element).ID() != "win-1" {
			t.Errorf("unexpected window %v", win)
		}
	})

	t.Run("no window", func(t *testing.T) {
		client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeValue(w, nil)
		})

		_, err := client.ActiveWindow(context.Background())
		if !errors.Is(err, core.ErrNoWindow) {
			t.Errorf("got %v, want ErrNoWindow", err)
		}
	})
}

func TestClient_ElementActions(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		writeValue(w, nil)
	})
	el := &Element{id: "el-9", client: client}
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantPath string
		wantBody string
	}{
		{"click", func() error { return client.Click(ctx, el) }, "/session/test-session/element/el-9/click", ""},
		{"double click", func() error { return client.DoubleClick(ctx, el) }, "/session/test-session/element/el-9/doubleclick", ""},
		{"right click", func() error { return client.RightClick(ctx, el) }, "/session/test-session/element/el-9/rightclick", ""},
		{"focus", func() error { return client.Focus(ctx, el) }, "/session/test-session/element/el-9/focus", ""},
		{"toggle", func() error { return client.Toggle(ctx, el) }, "/session/test-session/element/el-9/toggle", ""},
		{"set text", func() error { return client.SetText(ctx, el, "hello") }, "/session/test-session/element/el-9/value", `{"text":"hello"}`},
		{"press key", func() error { return client.PressKey(ctx, "ENTER") }, "/session/test-session/keys", `{"key":"ENTER"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMethod, gotPath, gotBody = "", "", ""
			if err := tt.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotMethod != "POST" {
				t.Errorf("method = %s, want POST", gotMethod)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %s, want %s", gotPath, tt.wantPath)
			}
			if tt.wantBody != "" && strings.TrimSpace(gotBody) != tt.wantBody {
				t.Errorf("body = %s, want %s", gotBody, tt.wantBody)
			}
		})
	}
}

func TestClient_Text(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/session/test-session/element/el-3/text" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		writeValue(w, "current value")
	})

	got, err := client.Text(context.Background(), &Element{id: "el-3", client: client})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "current value" {
		t.Errorf("text = %q", got)
	}
}

func TestClient_ToggleState(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("method = %s, want GET", r.Method)
		}
		writeValue(w, true)
	})

	on, err := client.ToggleState(context.Background(), &Element{id: "el-4", client: client})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !on {
		t.Error("expected toggle state true")
	}
}

func TestClient_Screenshot(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, base64.StdEncoding.EncodeToString(png))
	})

	got, err := client.Screenshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(png) {
		t.Errorf("screenshot bytes = %v", got)
	}
}

func TestClient_ForeignElement(t *testing.T) {
	client := newSessionClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeValue(w, nil)
	})

	if _, err := client.FindFirstDescendant(context.Background(), foreignElement{}, core.Filter{}); err == nil {
		t.Error("expected error for a non-bridge root")
	}
	if err := client.Click(context.Background(), foreignElement{}); err == nil {
		t.Error("expected error for a non-bridge element")
	}
}

type foreignElement struct{}

func (foreignElement) Name() string                  { return "" }
func (foreignElement) ControlType() core.ControlType { return core.ControlTypeNone }
func (foreignElement) AutomationID() string          { return "" }
func (foreignElement) ClassName() string             { return "" }
