package stack

// Stats is the derived overhead record for one payload.
type Stats struct {
	PayloadSize       int     `json:"payload_size"`
	TotalSize         int     `json:"total_size"`
	HeaderSize        int     `json:"header_size"`
	OverheadRatio     float64 `json:"overhead_ratio"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
}

// OverheadStats derives the five-field stats record from one
// Encapsulate call. It holds no state of its own.
func (s *Stack) OverheadStats(payload []byte) (Stats, error) {
	packet, err := s.Encapsulate(payload)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		PayloadSize: len(payload),
		TotalSize:   len(packet),
		HeaderSize:  len(packet) - len(payload),
	}
	if st.PayloadSize > 0 {
		st.OverheadRatio = float64(st.HeaderSize) / float64(st.PayloadSize)
	}
	if st.TotalSize > 0 {
		st.EfficiencyPercent = float64(st.PayloadSize) / float64(st.TotalSize) * 100
	}
	return st, nil
}
