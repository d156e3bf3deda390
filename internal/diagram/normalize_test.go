package diagram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(kind, data string) Raw {
	return Raw{Type: kind, Data: json.RawMessage(data)}
}

func TestNormalizeRadarKeepsValidData(t *testing.T) {
	got := Normalize(raw("radar", `{"labels":["a","b","c"],"studentValues":[1,2,3],"targetValues":[4,5,6]}`))
	assert.Equal(t, Radar{
		Labels:        []string{"a", "b", "c"},
		StudentValues: []float64{1, 2, 3},
		TargetValues:  []float64{4, 5, 6},
	}, got)
}

func TestNormalizeRadarDefaults(t *testing.T) {
	got := Normalize(raw("radar", `{}`))
	assert.Equal(t, Radar{
		Labels:        []string{"논리", "연산", "직관", "수식", "창의"},
		StudentValues: []float64{80, 60, 90, 70, 85},
		TargetValues:  []float64{90, 80, 85, 90, 80},
	}, got)
}

func TestNormalizeRadarMismatchedVectorIsResized(t *testing.T) {
	got := Normalize(raw("radar", `{"labels":["a","b","c"],"studentValues":[1,2],"targetValues":"oops"}`))
	r, ok := got.(Radar)
	require.True(t, ok)
	assert.Equal(t, []float64{80, 60, 90}, r.StudentValues)
	assert.Equal(t, []float64{90, 80, 85}, r.TargetValues)
}

func TestNormalizeFlowchart(t *testing.T) {
	assert.Equal(t, Flowchart{Steps: []string{"x", "y"}}, Normalize(raw("flowchart", `{"steps":["x","y"]}`)))
	assert.Equal(t, Flowchart{Steps: []string{"시작", "과정", "결과"}}, Normalize(raw("flowchart", `null`)))
}

func TestNormalizeComparison(t *testing.T) {
	got := Normalize(raw("Comparison", `{"categories":["p","q","r","s"],"score":[1,2,3,4]}`))
	assert.Equal(t, Comparison{Categories: []string{"p", "q", "r", "s"}, Scores: []float64{1, 2, 3, 4}}, got)

	got = Normalize(raw("comparison", `{"categories":["p","q","r","s"]}`))
	assert.Equal(t, Comparison{Categories: []string{"p", "q", "r", "s"}, Scores: []float64{70, 50, 90, 70}}, got)

	got = Normalize(raw("comparison", ``))
	assert.Equal(t, Comparison{Categories: []string{"집중도", "속도", "정확성"}, Scores: []float64{70, 50, 90}}, got)
}

func TestNormalizeUnknownTagRendersNothing(t *testing.T) {
	assert.Nil(t, Normalize(raw("pie", `{"labels":["a"]}`)))
	assert.Nil(t, Normalize(Raw{}))
}

func TestNormalizeLengthInvariantOnGarbage(t *testing.T) {
	inputs := []string{
		`{"labels":[],"studentValues":[],"targetValues":[]}`,
		`{"labels":[1,2],"studentValues":["a"]}`,
		`[1,2,3]`,
		`"string"`,
		`{"labels":["only"],"studentValues":[1,2,3,4,5,6]}`,
		`{"categories":["a","b"],"score":[1]}`,
		`not json`,
	}
	for _, in := range inputs {
		for _, kind := range []string{"radar", "flowchart", "comparison"} {
			var p Payload
			require.NotPanics(t, func() { p = Normalize(raw(kind, in)) }, "%s %s", kind, in)
			switch v := p.(type) {
			case Radar:
				require.NotEmpty(t, v.Labels)
				require.Len(t, v.StudentValues, len(v.Labels))
				require.Len(t, v.TargetValues, len(v.Labels))
			case Comparison:
				require.NotEmpty(t, v.Categories)
				require.Len(t, v.Scores, len(v.Categories))
			case Flowchart:
				require.NotEmpty(t, v.Steps)
			default:
				t.Fatalf("unexpected payload %T for %s", p, kind)
			}
		}
	}
}

func TestWrapMarshalsEnvelope(t *testing.T) {
	b, err := json.Marshal(Wrap(Flowchart{Steps: []string{"a"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"flowchart","data":{"steps":["a"]}}`, string(b))
	assert.Nil(t, Wrap(nil))
}

func TestCloneCopiesSlices(t *testing.T) {
	c := Comparison{Categories: []string{"a", "b"}, Scores: []float64{1, 2}}
	out := Clone(c).(Comparison)
	out.Categories[0] = "z"
	out.Scores[0] = 9
	assert.Equal(t, "a", c.Categories[0])
	assert.Equal(t, 1.0, c.Scores[0])

	f := Flowchart{Steps: []string{"x"}}
	assert.Equal(t, f, Clone(f))
	assert.Nil(t, Clone(nil))
}
