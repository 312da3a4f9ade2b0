package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// easeFuncs maps descriptor ease names onto gween's curves.
var easeFuncs = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
}

// easeNames is the reverse map, keyed by function pointer. Top-level
// function pointers are stable, so Snapshot can recover the name a
// descriptor was built from.
var easeNames = func() map[uintptr]string {
	m := make(map[uintptr]string, len(easeFuncs))
	for name, fn := range easeFuncs {
		m[reflect.ValueOf(fn).Pointer()] = name
	}
	return m
}()

func easeByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easeFuncs[name]
	if !ok {
		known := make([]string, 0, len(easeFuncs))
		for k := range easeFuncs {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown ease %q (known: %s)", name, strings.Join(known, ", "))
	}
	return fn, nil
}

// easeName returns the descriptor name of fn, or "linear" for nil or
// unrecognized curves.
func easeName(fn ease.TweenFunc) string {
	if fn == nil {
		return "linear"
	}
	if name, ok := easeNames[reflect.ValueOf(fn).Pointer()]; ok {
		return name
	}
	return "linear"
}
