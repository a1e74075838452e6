package descriptor

type Kind int

const (
	Unknown Kind = iota
	Integer
	Real
	String
)

func ParseKind(token string) Kind {
	switch token {
	case "integer":
		return Integer
	case "real":
		return Real
	case "string":
		return String
	default:
		return Unknown
	}
}

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case String:
		return "string"
	default:
		return "<unknown>"
	}
}

type Precision int

const (
	Unspecified Precision = iota
	Single
	Double
)

func ParsePrecision(token string) (Precision, bool) {
	switch token {
	case "single_precision":
		return Single, true
	case "double_precision":
		return Double, true
	default:
		return Unspecified, false
	}
}

func (p Precision) String() string {
	switch p {
	case Single:
		return "single_precision"
	case Double:
		return "double_precision"
	default:
		return "<unspecified>"
	}
}

type Storage int

const (
	Formatted Storage = iota
	Unformatted
)

const unformattedToken = "unformatted"

func (s Storage) String() string {
	if s == Unformatted {
		return unformattedToken
	}

	return "formatted"
}
