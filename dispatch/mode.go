package dispatch

// RunMode selects which top-level operation the process performs
type RunMode int

const (
	// ModeNone performs nothing. Every unrecognized run_mode maps here.
	ModeNone RunMode = iota
	// ModeTrain trains a model from the input files
	ModeTrain
	// ModePredict predicts labels for the input files
	ModePredict
)

// ParseRunMode maps the run_mode setting to a RunMode. Matching is exact.
func ParseRunMode(s string) RunMode {
	switch s {
	case "train":
		return ModeTrain
	case "predict":
		return ModePredict
	default:
		return ModeNone
	}
}

func (m RunMode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModePredict:
		return "predict"
	default:
		return "none"
	}
}
