package handicap

// DefaultBackupBaseName is the ledger snapshot name used before a period
// close mutates the roster.
const DefaultBackupBaseName = "HDCPバックアップ"

// DefaultWeights maps a ranking position to its correction weight.
func DefaultWeights() map[int]float64 {
	return map[int]float64{1: 0.8, 2: 0.85, 3: 0.9}
}

// Options configures a period close. Zero values select the defaults.
type Options struct {
	BackupBaseName string
	Weights        map[int]float64
}

func (o Options) withDefaults() Options {
	if o.BackupBaseName == "" {
		o.BackupBaseName = DefaultBackupBaseName
	}
	if o.Weights == nil {
		o.Weights = DefaultWeights()
	}
	return o
}

// Correction tags, recorded per player for audit display.
const (
	TagPriorRank   = "adjusted-by-prior-rank"
	TagCurrentRank = "adjusted-by-current-rank"
)

// PlayerResult is the audit line for one player's recalculated handicap.
type PlayerResult struct {
	PlayerID  string
	Raw       float64 // handicap before rank correction
	Corrected float64
	Delta     float64 // corrected minus the prior handicap
	Remark    string
	Tag       string // empty when no correction applied
}
