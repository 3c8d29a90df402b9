package gldraw

// QueryKind is the counter a query object measures.
type QueryKind uint8

const (
	QuerySamplesPassed QueryKind = iota
	QueryAnySamplesPassed
	QueryAnySamplesPassedConservative
	QueryTimeElapsed
	QueryPrimitivesGenerated
	QueryTransformFeedbackPrimitivesWritten

	queryKindCount
)

// String returns a human-readable name for the query kind.
func (k QueryKind) String() string {
	switch k {
	case QuerySamplesPassed:
		return "SamplesPassed"
	case QueryAnySamplesPassed:
		return "AnySamplesPassed"
	case QueryAnySamplesPassedConservative:
		return "AnySamplesPassedConservative"
	case QueryTimeElapsed:
		return "TimeElapsed"
	case QueryPrimitivesGenerated:
		return "PrimitivesGenerated"
	case QueryTransformFeedbackPrimitivesWritten:
		return "TransformFeedbackPrimitivesWritten"
	default:
		return unknownString
	}
}

// IsOcclusion reports whether k counts samples. The three sample kinds
// share one slot of the device.
func (k QueryKind) IsOcclusion() bool {
	return k <= QueryAnySamplesPassedConservative
}

// Query is a device query object.
//
// A query can be begun by exactly one draw. Later draws may keep it
// running by passing it again; once it has ended it cannot be restarted.
type Query struct {
	kind QueryKind
	id   uint32
	used bool
}

// NewQuery wraps the device query object id of kind k.
func NewQuery(k QueryKind, id uint32) *Query {
	return &Query{kind: k, id: id}
}

func (q *Query) Kind() QueryKind { return q.kind }
func (q *Query) ID() uint32      { return q.id }

// IsUnused reports whether the query has never been begun.
func (q *Query) IsUnused() bool { return !q.used }
