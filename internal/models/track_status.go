package models

// TrackStatus is the production stage of a track.
type TrackStatus string

const (
	TrackDraft     TrackStatus = "Draft"
	TrackRecording TrackStatus = "Recording"
	TrackMixing    TrackStatus = "Mixing"
	TrackCompleted TrackStatus = "Completed"
)

// trackStatusOrder is the only direction a track may move in.
var trackStatusOrder = []TrackStatus{TrackDraft, TrackRecording, TrackMixing, TrackCompleted}

// Rank returns the position of s in the production order, or -1 when s is
// not a known status.
func (s TrackStatus) Rank() int {
	for i, v := range trackStatusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known status.
func (s TrackStatus) Valid() bool {
	return s.Rank() >= 0
}

// Precedes reports whether s comes strictly before next.
func (s TrackStatus) Precedes(next TrackStatus) bool {
	return s.Rank() >= 0 && next.Rank() > s.Rank()
}
