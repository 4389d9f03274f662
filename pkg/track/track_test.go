package track

import (
	"fmt"
	"sync"
)

// recorder is a fake Analytics capturing every emitted call in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) Page(url string) {
	r.record("page(" + url + ")")
}

func (r *recorder) Identify(userID string, traits map[string]string) {
	r.record("identify(" + userID + ")")
}

func (r *recorder) Reset() {
	r.record("reset()")
}

func (r *recorder) TrackValue(name string, value float64, properties map[string]string) {
	r.record(fmt.Sprintf("track(%s,%s=%g)", name, properties["vital"], value))
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}
