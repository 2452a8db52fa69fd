package tender

import "fmt"

// Stats summarizes a tender history.
type Stats struct {
	TotalAnalyzed  int
	Won            int
	TotalValue     float64
	PendingResults int
}

// Summarize computes history statistics. Unparseable values do not contribute to TotalValue.
func Summarize(tenders []Tender) Stats {
	var s Stats
	for i := range tenders {
		t := &tenders[i]
		s.TotalAnalyzed++
		switch t.Status() {
		case StatusWon:
			s.Won++
		case StatusUnderEvaluation:
			s.PendingResults++
		}
		if v, ok := t.Magnitude().Value(); ok {
			s.TotalValue += v
		}
	}
	return s
}

// FormatTotalValue renders TotalValue in crore, e.g. "₹62.7 Cr".
func (s Stats) FormatTotalValue() string {
	return fmt.Sprintf("₹%.1f Cr", s.TotalValue)
}
