package types

import (
	"encoding/base64"
	"encoding/json"

	"questio/internal/diagram"
)

// ReportSectionCount is the number of pages a detailed report always has.
const ReportSectionCount = 15

// AnalysisSummary is the short persona analysis produced after scoring.
type AnalysisSummary struct {
	PersonaName  string `json:"personaName"`
	AnalysisText string `json:"analysisText"`
}

// ReportSection is one numbered page of the detailed report.
type ReportSection struct {
	Title              string          `json:"title"`
	Content            string          `json:"content"`
	ProTip             string          `json:"proTip,omitempty"`
	DiagramDescription string          `json:"diagramDescription,omitempty"`
	Diagram            diagram.Payload `json:"-"`
}

// Clone returns a copy whose diagram shares no slices with s.
func (s ReportSection) Clone() ReportSection {
	s.Diagram = diagram.Clone(s.Diagram)
	return s
}

func (s ReportSection) MarshalJSON() ([]byte, error) {
	type alias ReportSection
	return json.Marshal(struct {
		alias
		Diagram *diagram.Wire `json:"diagram,omitempty"`
	}{alias: alias(s), Diagram: diagram.Wrap(s.Diagram)})
}

// Citation is a web source attached by grounded generation.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// PersonaImage is a generated illustration before it is persisted.
type PersonaImage struct {
	MIMEType string
	Data     []byte
}

// DataURL encodes the image inline, the way browsers accept it in <img src>.
func (p *PersonaImage) DataURL() string {
	if p == nil || len(p.Data) == 0 {
		return ""
	}
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
