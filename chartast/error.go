package chartast

// ErrorKind classifies a parse failure so callers can react without matching messages.
type ErrorKind string

const (
	KindSyntax             ErrorKind = "syntax"
	KindUnknownChartType   ErrorKind = "unknown_chart_type"
	KindNumber             ErrorKind = "number"
	KindUnterminatedString ErrorKind = "unterminated_string"
	KindLengthMismatch     ErrorKind = "length_mismatch"
	KindUnknownColumn      ErrorKind = "unknown_column"
	KindMissing            ErrorKind = "missing"
	// KindDirective is only ever a warning.
	KindDirective ErrorKind = "directive"
)

type Error struct {
	Range   Range     `json:"range"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"errmsg"`
}

func (e Error) Error() string {
	return e.Message
}
