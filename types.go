package jsonmap

// DefaultMaxDepth bounds nesting when no explicit limit is configured.
const DefaultMaxDepth = 512

// Severity expresses how a parse-time finding is handled.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Limits bounds the work done while building the Value tree.
type Limits struct {
	MaxDepth      int      // 0 selects DefaultMaxDepth; negative disables the check.
	MaxBytes      int64    // 0 disables the check. Only enforced by drivers that report offsets.
	DuplicateKeys Severity // Ignore keeps the last occurrence; Warn logs it; Error fails the parse.
}

// Strategies bundles the policy choices of one decode call. It is frozen when
// the Adapter is built and shared by pointer with every Mapper of the call.
type Strategies struct {
	Date      DateStrategy
	Data      DataStrategy
	Keys      KeyStrategy
	Missing   MissingValueStrategy
	NonFinite NonFiniteStrategy
	Limits    Limits
}

// DefaultStrategies returns ISO 8601 dates, base64 data, keys as written,
// failing on missing values and on non-finite float strings.
func DefaultStrategies() Strategies {
	return Strategies{
		Date:      DateISO8601,
		Data:      DataBase64,
		Keys:      KeysDefault,
		Missing:   MissingThrow,
		NonFinite: NonFiniteThrow,
	}
}

func (l Limits) maxDepth() int {
	switch {
	case l.MaxDepth == 0:
		return DefaultMaxDepth
	case l.MaxDepth < 0:
		return 0
	default:
		return l.MaxDepth
	}
}
