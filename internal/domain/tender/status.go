package tender

// Status is the bid status shown in the tender history.
type Status string

// Known statuses.
const (
	StatusUnderEvaluation  Status = "Under Evaluation"
	StatusSubmitted        Status = "Submitted"
	StatusAnalysisComplete Status = "Analysis Complete"
	StatusBidLost          Status = "Bid Lost"
	StatusWon              Status = "Won"
)

// BadgeClass returns the CSS classes of the status badge. Unknown statuses are grey.
func (s Status) BadgeClass() string {
	switch s {
	case StatusWon:
		return "bg-green-100 text-green-700 border-green-200"
	case StatusSubmitted:
		return "bg-blue-100 text-blue-700 border-blue-200"
	case StatusUnderEvaluation:
		return "bg-amber-100 text-amber-700 border-amber-200"
	case StatusAnalysisComplete:
		return "bg-purple-100 text-purple-700 border-purple-200"
	case StatusBidLost:
		return "bg-red-100 text-red-700 border-red-200"
	default:
		return "bg-gray-100 text-gray-700 border-gray-200"
	}
}
