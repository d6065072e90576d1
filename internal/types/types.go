package types

// Segment is one time-aligned unit of recognized speech. Start and End are
// seconds from the beginning of the audio and are non-decreasing across a
// transcript. Segment order is significant: it is the order in which the
// synthesized per-segment clips are concatenated later.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full ordered output of one transcription run.
type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}
