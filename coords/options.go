package coords

// Defaults (single source of truth for zero-value behavior).
const (
	// DefaultDelimiter separates the label and coordinate fields.
	DefaultDelimiter = ","

	// DefaultGroupSeparator splits "Group:Sample" labels in aggregated mode.
	DefaultGroupSeparator = ":"

	// DefaultAggregate keeps one vector per line.
	DefaultAggregate = false
)

const (
	panicDelimiterEmpty = "coords: WithDelimiter: delimiter must be non-empty"
	panicSeparatorEmpty = "coords: WithGroupSeparator: separator must be non-empty"
	panicSeparatorClash = "coords: group separator must differ from the field delimiter"
)

// Option mutates parser options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*options)

type options struct {
	delimiter string
	groupSep  string
	aggregate bool
}

// WithAggregate averages all rows whose labels share the prefix before the
// group separator into a single vector keyed by that prefix.
func WithAggregate() Option {
	return func(o *options) { o.aggregate = true }
}

// WithAggregateIf is WithAggregate driven by a runtime flag.
func WithAggregateIf(on bool) Option {
	return func(o *options) { o.aggregate = on }
}

// WithGroupSeparator sets the label separator used in aggregated mode.
// Panics if sep is empty.
func WithGroupSeparator(sep string) Option {
	if sep == "" {
		panic(panicSeparatorEmpty)
	}

	return func(o *options) { o.groupSep = sep }
}

// WithDelimiter sets the field delimiter. Panics if d is empty.
func WithDelimiter(d string) Option {
	if d == "" {
		panic(panicDelimiterEmpty)
	}

	return func(o *options) { o.delimiter = d }
}

// gatherOptions applies opts over the defaults and enforces invariants.
func gatherOptions(opts ...Option) options {
	o := options{
		delimiter: DefaultDelimiter,
		groupSep:  DefaultGroupSeparator,
		aggregate: DefaultAggregate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.aggregate && o.groupSep == o.delimiter {
		panic(panicSeparatorClash)
	}

	return o
}
