package pipeline

// Stage identifies a phase of the update pipeline.
type Stage int

const (
	StageReading Stage = iota
	StageAggregating
	StageApplying
	StageStyling
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageReading:
		return "Reading"
	case StageAggregating:
		return "Aggregating"
	case StageApplying:
		return "Applying"
	case StageStyling:
		return "Styling"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress reports pipeline progress to an observer.
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	ItemIndex   int
	TotalItems  int
	Message     string
}
