package prompt

import genai "google.golang.org/genai"

func stringArray() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func numberArray() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeNumber}}
}

// AnalysisSchema constrains the short analysis to {personaName, analysisText}.
func AnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"personaName":  {Type: genai.TypeString},
			"analysisText": {Type: genai.TypeString},
		},
		Required: []string{"personaName", "analysisText"},
	}
}

// ReportSchema constrains the detailed report to an array of sections,
// each with a loosely typed diagram object.
func ReportSchema() *genai.Schema {
	diagram := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type": {Type: genai.TypeString, Enum: []string{"radar", "flowchart", "comparison"}},
			"data": {
				Type:        genai.TypeObject,
				Description: "Diagram data fields. Use labels/studentValues/targetValues for radar, steps for flowchart, or categories/score for comparison.",
				Properties: map[string]*genai.Schema{
					"labels":        stringArray(),
					"studentValues": numberArray(),
					"targetValues":  numberArray(),
					"steps":         stringArray(),
					"categories":    stringArray(),
					"score":         numberArray(),
				},
			},
		},
		Required: []string{"type", "data"},
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":              {Type: genai.TypeString},
				"content":            {Type: genai.TypeString},
				"proTip":             {Type: genai.TypeString},
				"diagramDescription": {Type: genai.TypeString},
				"diagram":            diagram,
			},
			Required: []string{"title", "content", "proTip", "diagramDescription", "diagram"},
		},
	}
}
