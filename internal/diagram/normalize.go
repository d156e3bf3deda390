package diagram

import (
	"encoding/json"
	"strings"
)

var (
	defaultRadarLabels   = []string{"논리", "연산", "직관", "수식", "창의"}
	defaultRadarStudent  = []float64{80, 60, 90, 70, 85}
	defaultRadarTarget   = []float64{90, 80, 85, 90, 80}
	defaultFlowSteps     = []string{"시작", "과정", "결과"}
	defaultCompareLabels = []string{"집중도", "속도", "정확성"}
	defaultCompareScores = []float64{70, 50, 90}
)

// Normalize validates raw and fills every missing or inconsistent field
// with a default, so the result is always renderable. An unrecognized tag
// yields nil: the display layer renders nothing for it.
func Normalize(raw Raw) Payload {
	fields := decodeFields(raw.Data)
	switch Kind(strings.ToLower(strings.TrimSpace(raw.Type))) {
	case KindRadar:
		labels := stringsOr(fields["labels"], defaultRadarLabels)
		return Radar{
			Labels:        labels,
			StudentValues: valuesFor(fields["studentValues"], defaultRadarStudent, len(labels)),
			TargetValues:  valuesFor(fields["targetValues"], defaultRadarTarget, len(labels)),
		}
	case KindFlowchart:
		return Flowchart{Steps: stringsOr(fields["steps"], defaultFlowSteps)}
	case KindComparison:
		cats := stringsOr(fields["categories"], defaultCompareLabels)
		return Comparison{
			Categories: cats,
			Scores:     valuesFor(fields["score"], defaultCompareScores, len(cats)),
		}
	default:
		return nil
	}
}

func decodeFields(data json.RawMessage) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}
	if len(data) == 0 {
		return fields
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

func stringsOr(raw json.RawMessage, def []string) []string {
	var out []string
	if len(raw) == 0 || json.Unmarshal(raw, &out) != nil || len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

// valuesFor decodes a numeric vector and keeps it only if it has exactly
// n entries; otherwise the default is resized to n.
func valuesFor(raw json.RawMessage, def []float64, n int) []float64 {
	var out []float64
	if len(raw) > 0 && json.Unmarshal(raw, &out) == nil && len(out) == n {
		return out
	}
	return resize(def, n)
}

func resize(def []float64, n int) []float64 {
	out := make([]float64, n)
	if len(def) == 0 {
		return out
	}
	for i := range out {
		out[i] = def[i%len(def)]
	}
	return out
}
