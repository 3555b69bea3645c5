package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/hiview/internal/hive"
	"github.com/atomicstack/hiview/internal/logging/events"
	"github.com/atomicstack/hiview/internal/nav"
	"github.com/atomicstack/hiview/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Config describes user-provided application options.
type Config struct {
	HivePath   string
	Width      int
	Height     int
	ShowFooter bool
	Sort       nav.SortMode
	CacheSize  int
	ConfigFile string
}

// Run opens the hive and executes the Bubble Tea program until the user quits.
func Run(cfg Config) (err error) {
	defer func() { events.App.Stop(err) }()
	model, h, err := newModel(cfg)
	if err != nil {
		return err
	}
	defer h.Close()
	events.App.Start(startupPayload(cfg, h, model.Navigator()))

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newModel(cfg Config) (*ui.Model, *hive.Hive, error) {
	h, err := hive.Open(cfg.HivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open hive: %w", err)
	}
	navigator := nav.New(h, nav.Options{CacheSize: cfg.CacheSize, Sort: cfg.Sort})
	if err := navigator.EnterRoot(); err != nil {
		h.Close()
		return nil, nil, fmt.Errorf("enter root key: %w", err)
	}
	return ui.NewModel(navigator, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	}), h, nil
}

// startupPayload describes the opened hive and the terminal it is drawn on.
func startupPayload(cfg Config, h *hive.Hive, n *nav.Navigator) map[string]interface{} {
	root := n.Current()
	details := map[string]interface{}{
		"path":         h.Path(),
		"minorVersion": h.MinorVersion(),
	}
	if info, err := os.Stat(h.Path()); err == nil {
		details["bytes"] = info.Size()
	}
	payload := map[string]interface{}{
		"config": cfg,
		"hive":   details,
		"root": map[string]interface{}{
			"name":    root.Name,
			"subkeys": root.Descendants,
			"values":  root.ValueCount,
		},
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		payload["terminal"] = false
		return payload
	}
	if width, height, err := term.GetSize(fd); err == nil {
		payload["terminal"] = map[string]int{"width": width, "height": height}
	} else {
		payload["terminalError"] = err.Error()
	}
	return payload
}
