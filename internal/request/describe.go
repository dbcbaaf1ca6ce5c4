package request

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/dshills/jdwp/internal/event"
)

// Describe renders the request's live state as JSON for diagnostics and
// for protocol request-description replies. Modifier fields are read from
// the live modifiers, so a Count modifier shows its remaining countdown,
// not its construction value.
func Describe(req *Request) (string, error) {
	out := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("id", req.ID())
	set("eventKind", req.Kind().String())
	set("suspendPolicy", req.SuspendPolicy().String())
	set("enabled", req.Enabled())

	for i, mod := range req.Modifiers() {
		prefix := fmt.Sprintf("modifiers.%d.", i)
		set(prefix+"kind", mod.Kind().String())

		switch m := mod.(type) {
		case *event.CountModifier:
			set(prefix+"count", m.Count())
			set(prefix+"fired", m.Fired())
		case *event.ConditionalModifier:
			set(prefix+"exprID", m.ExprID())
		case *event.ThreadOnlyModifier:
			set(prefix+"thread", uint64(m.Thread()))
		case *event.ClassOnlyModifier:
			set(prefix+"class", uint64(m.Class()))
		case *event.ClassMatchModifier:
			set(prefix+"pattern", m.Pattern())
		case *event.ClassExcludeModifier:
			set(prefix+"pattern", m.Pattern())
		case *event.LocationOnlyModifier:
			set(prefix+"class", uint64(m.Class()))
			set(prefix+"method", uint64(m.Method()))
			set(prefix+"location", uint64(m.Location()))
		case *event.ExceptionOnlyModifier:
			set(prefix+"class", uint64(m.Class()))
			set(prefix+"caught", m.Caught())
			set(prefix+"uncaught", m.Uncaught())
		case *event.FieldOnlyModifier:
			set(prefix+"class", uint64(m.Class()))
			set(prefix+"field", uint64(m.Field()))
		case *event.StepModifier:
			set(prefix+"thread", uint64(m.Thread()))
			set(prefix+"size", int32(m.Size()))
			set(prefix+"depth", int32(m.Depth()))
		case *event.InstanceOnlyModifier:
			set(prefix+"instance", uint64(m.Instance()))
		}
	}

	if err != nil {
		return "", fmt.Errorf("describe request %d: %w", req.ID(), err)
	}
	return out, nil
}
