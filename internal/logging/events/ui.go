package events

import "github.com/atomicstack/hiview/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Focus(pane string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": pane})
}

func (UITracer) Copy(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.copy", payload)
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}
