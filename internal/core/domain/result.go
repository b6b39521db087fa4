package domain

// Treatments groups treatment advice by approach. Both lists are
// always populated in a finished result.
type Treatments struct {
	Organic  []string `json:"organic"`
	Chemical []string `json:"chemical"`
}

// DiagnosisResult is the response contract of the diagnosis pipeline.
// Every field is populated on every path: values come from the model
// output when present, then from the matched catalog record, then from
// generic defaults. Callers never see a partially filled result.
type DiagnosisResult struct {
	Disease      Disease    `json:"disease"`
	DetectedCrop *Crop      `json:"detected_crop,omitempty"`
	Confidence   float64    `json:"confidence"`
	Reasoning    string     `json:"reasoning"`
	Treatments   Treatments `json:"treatments"`
	IsOffline    bool       `json:"is_offline"`
	ImageURL     string     `json:"image_url"`
}

// Complete reports whether every contract field carries a usable
// value. It exists for tests and debug assertions; production paths
// are built so this always holds.
func (r *DiagnosisResult) Complete() bool {
	return r.Disease.Name != "" &&
		r.Reasoning != "" &&
		len(r.Treatments.Organic) > 0 &&
		len(r.Treatments.Chemical) > 0 &&
		r.Confidence >= 0 && r.Confidence <= 1
}
