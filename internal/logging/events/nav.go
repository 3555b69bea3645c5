package events

import "github.com/atomicstack/hiview/internal/logging"

type NavTracer struct{}

type HiveTracer struct{}

var (
	Nav  = NavTracer{}
	Hive = HiveTracer{}
)

func (NavTracer) Enter(id int64, name string, children int) {
	logging.Trace("nav.enter", map[string]interface{}{"id": id, "name": name, "children": children})
}

func (NavTracer) Leave(from, to int64) {
	logging.Trace("nav.leave", map[string]interface{}{"from": from, "to": to})
}

func (NavTracer) Cursor(id int64, cursor int) {
	logging.Trace("nav.cursor", map[string]interface{}{"key": id, "cursor": cursor})
}

func (NavTracer) ValueCursor(id int64, cursor int) {
	logging.Trace("nav.value-cursor", map[string]interface{}{"key": id, "cursor": cursor})
}

func (NavTracer) Restore(list string, id int64, cursor int) {
	logging.Trace("nav.restore", map[string]interface{}{"list": list, "key": id, "cursor": cursor})
}

func (NavTracer) Sort(mode string) {
	logging.Trace("nav.sort", map[string]interface{}{"mode": mode})
}

func (NavTracer) Find(query string, cursor int) {
	logging.Trace("nav.find", map[string]interface{}{"query": query, "cursor": cursor})
}

func (HiveTracer) Open(path string, root int64) {
	logging.Trace("hive.open", map[string]interface{}{"path": path, "root": root})
}

func (HiveTracer) Error(op string, id int64, err error) {
	if err == nil {
		return
	}
	logging.Trace("hive.error", map[string]interface{}{"op": op, "key": id, "error": err.Error()})
}
