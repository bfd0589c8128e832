package precedence

// Dialect pairs a scanner character set with a precedence table.
type Dialect struct {
	name  string
	table Table
	// extended enables scanning ~ & | ^ % and the shift operators.
	extended bool
}

// NewDialect creates a dialect. If extended is true, the scanner recognizes
// ~ & | ^ % < > << >> in addition to the digits, parentheses, + - * / and **
// that every dialect scans.
func NewDialect(name string, table Table, extended bool) *Dialect {
	return &Dialect{name: name, table: table, extended: extended}
}

var (
	// Arithmetic is the integer calculator dialect. From loosest to tightest
	// binding, its levels are ** (right-associative), + - and * / (both
	// left-associative), and prefix - +.
	Arithmetic = NewDialect("arithmetic", arithmeticTable, false)
	// Bitwise is the dialect with bitwise operators. From loosest to tightest
	// binding, its levels are + - | ^ and * / % << >> & (both
	// left-associative), and prefix ~ -.
	Bitwise = NewDialect("bitwise", bitwiseTable, true)
)

// Name returns the dialect's name.
func (d *Dialect) Name() string {
	return d.name
}

// Table returns the dialect's precedence table.
func (d *Dialect) Table() Table {
	return d.table
}
