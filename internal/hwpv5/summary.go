package hwpv5

import (
	"github.com/richardlehane/msoleps"
)

const summaryStream = "\x05HwpSummaryInformation"

// Summary reads the document's OLE property-set summary stream and returns
// its properties as name → rendered value. The stream is optional; a nil
// map with a nil error means it is absent or unreadable, which is never a
// document failure — summary metadata only decorates the serialized output.
func (r *Reader) Summary() (map[string]string, error) {
	stream, _, err := r.openStream(summaryStream)
	if err != nil {
		return nil, nil
	}

	props := msoleps.New()
	if err := props.Reset(stream); err != nil {
		return nil, nil
	}

	out := make(map[string]string, len(props.Property))
	for _, p := range props.Property {
		if p.Name == "" {
			continue
		}
		out[p.Name] = p.String()
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
