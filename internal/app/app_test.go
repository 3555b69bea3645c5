package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/hiview/internal/hive"
	"github.com/atomicstack/hiview/internal/nav"
	"github.com/atomicstack/hiview/internal/testutil"
	"github.com/atomicstack/hiview/internal/ui"
)

func writeHive(t *testing.T) string {
	t.Helper()
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h := testutil.NewHive()
	root := h.RootKey("CMI-CreateHive", stamp)
	software := h.Key("Software", root, stamp)
	system := h.Key("System", root, stamp)
	h.Children(root, software, system)
	h.SetValues(software, h.Value("Owner", hive.RegSZ, testutil.UTF16LE("alice\x00")))
	return h.Write(t, root)
}

func TestNewModelOpensHive(t *testing.T) {
	model, h, err := newModel(Config{
		HivePath:   writeHive(t),
		Width:      100,
		Height:     30,
		ShowFooter: true,
		Sort:       nav.SortByName,
		CacheSize:  8,
	})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	defer h.Close()
	n := model.Navigator()
	if n.Current().Name != "CMI-CreateHive" {
		t.Fatalf("expected root key, got %q", n.Current().Name)
	}
	if n.SortMode() != nav.SortByName {
		t.Fatalf("expected name sort, got %s", n.SortMode())
	}
	if len(n.Children()) != 2 {
		t.Fatalf("expected 2 subkeys, got %d", len(n.Children()))
	}
	view := ui.NewHarness(model).View()
	for _, want := range []string{"Software", "System", `REG_SZ: "alice"`} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestNewModelMissingFile(t *testing.T) {
	_, _, err := newModel(Config{HivePath: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "open hive:") {
		t.Fatalf("expected open hive prefix, got %q", err)
	}
}

func TestNewModelRejectsNonHive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not a registry hive"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := newModel(Config{HivePath: path}); !errors.Is(err, hive.ErrNotHive) {
		t.Fatalf("expected ErrNotHive, got %v", err)
	}
}

func TestStartupPayloadDescribesHive(t *testing.T) {
	path := writeHive(t)
	cfg := Config{HivePath: path, Sort: nav.SortByName}
	model, h, err := newModel(cfg)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	defer h.Close()

	payload := startupPayload(cfg, h, model.Navigator())
	if payload["config"] != cfg {
		t.Fatalf("expected config %#v, got %#v", cfg, payload["config"])
	}
	details, ok := payload["hive"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected hive details in payload")
	}
	if details["path"] != path || details["minorVersion"] != uint32(5) {
		t.Fatalf("unexpected hive details %v", details)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if details["bytes"] != info.Size() {
		t.Fatalf("expected %d bytes, got %v", info.Size(), details["bytes"])
	}
	root, ok := payload["root"].(map[string]interface{})
	if !ok || root["name"] != "CMI-CreateHive" || root["subkeys"] != 2 {
		t.Fatalf("unexpected root details %v", payload["root"])
	}
	if _, ok := payload["terminal"]; !ok {
		if _, ok := payload["terminalError"]; !ok {
			t.Fatalf("expected terminal details in payload")
		}
	}
}
