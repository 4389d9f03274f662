package track

import "sync"

// Standard web vital names as reported by the browser performance timeline.
//
// Finalization semantics differ per vital, and the collector leans on them:
//   - TTFB and FCP settle once, early in the page load.
//   - LCP produces superseding candidates until user interaction freezes it;
//     the beacon layer reports the frozen value.
//   - CLS accumulates layout shifts and is final only when the page is
//     hidden; a beacon may still fire more than once on some browsers.
//   - INP can be re-reported as worse interactions land.
//
// Because CLS and INP may beacon superseding values, the collector forwards
// only the FIRST report it sees for each vital in a page load and drops the
// rest, keeping emission to at most one event per vital per page load.
const (
	VitalCLS  = "CLS"  // layout stability
	VitalINP  = "INP"  // input responsiveness
	VitalLCP  = "LCP"  // largest paint timing
	VitalFCP  = "FCP"  // first paint timing
	VitalTTFB = "TTFB" // load timing
)

// WebVitalsCollector forwards measured vitals as analytics events, at most
// one event per vital per page load.
type WebVitalsCollector struct {
	analytics Analytics

	mu          sync.Mutex
	initialized bool
	seen        map[string]bool
}

// NewWebVitalsCollector creates a collector. Pass nil to disable.
func NewWebVitalsCollector(analytics Analytics) *WebVitalsCollector {
	return &WebVitalsCollector{analytics: analytics}
}

// Init registers the collector for the current page load. Idempotent: a
// second call within the same page load does not re-register or reset the
// per-vital dedupe state.
func (c *WebVitalsCollector) Init() {
	if c.analytics == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return
	}
	c.initialized = true
	c.seen = make(map[string]bool)
}

// PageLoad resets the per-page-load state on navigation to a new document.
func (c *WebVitalsCollector) PageLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	c.seen = make(map[string]bool)
}

// Report forwards a measured vital. Reports before Init and duplicate or
// superseding reports within one page load are dropped.
func (c *WebVitalsCollector) Report(name string, value float64) {
	if c.analytics == nil {
		return
	}

	c.mu.Lock()
	if !c.initialized || c.seen[name] {
		c.mu.Unlock()
		return
	}
	c.seen[name] = true
	c.mu.Unlock()

	c.analytics.TrackValue("web_vital", value, map[string]string{"vital": name})
}
