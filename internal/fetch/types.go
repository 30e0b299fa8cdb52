package fetch

// Kind classifies how an artifact is consumed after acquisition.
type Kind int

const (
	// KindOrdinary artifacts are used in place once verified
	// (classpath entries, asset objects, manifests).
	KindOrdinary Kind = iota
	// KindNativeArchive artifacts are additionally unpacked into the
	// run's natives directory after being made available.
	KindNativeArchive
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindNativeArchive:
		return "native-archive"
	default:
		return "unknown"
	}
}

// Artifact is one required file. Artifacts are constructed from the
// resolved manifest at the start of a run and are immutable plan data
// thereafter; LocalPath is the unique key within a run.
type Artifact struct {
	Name       string // display name for logs and progress
	LocalPath  string // destination on disk, unique within a run
	URL        string // remote location
	SHA1       string // expected digest; empty means presence alone satisfies
	Size       int64  // declared byte length, used only for progress totals
	Kind       Kind
	Critical   bool // failure aborts the whole acquisition run
	Applicable bool // computed once from platform rules
}
