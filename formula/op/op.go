package op

type Op rune

const (
	Invalid Op = 0

	EOF Op = 1 << iota
	Number
	Cell
	Add
	Sub
	Mul
	Div
	Mod
	Pow
	Not
	And
	Or
	Eq
	Ne
	Le
	Ge
	Begin
	End
	RangeRef
	Semi
)

const (
	groupTok  Op = 1 << 30
	strictTok Op = 1 << 29
)

const (
	BegGrp   = groupTok | Begin
	EndGrp   = groupTok | End
	StrictEq = strictTok | Eq
	StrictNe = strictTok | Ne
)

var mapping = map[Op]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Pow:      "**",
	Div:      "/",
	Mod:      "%",
	Not:      "!",
	And:      "&&",
	Or:       "||",
	Eq:       "==",
	Ne:       "!=",
	StrictEq: "===",
	StrictNe: "!==",
	Le:       "<=",
	Ge:       ">=",
	BegGrp:   "(",
	EndGrp:   ")",
	RangeRef: ":",
	Semi:     ";",
}

var symbols map[string]Op

func init() {
	symbols = make(map[string]Op)
	for o, str := range mapping {
		symbols[str] = o
	}
}

func Symbol(oper Op) string {
	return mapping[oper]
}

// Lookup gives the operator written as str.
func Lookup(str string) (Op, bool) {
	o, ok := symbols[str]
	return o, ok
}

// Separators lists every operator symbol, longest first.
func Separators() []string {
	return []string{
		"===", "!==",
		"==", "!=", "**", "<=", ">=", "&&", "||",
		"(", ")", "+", "-", "*", "/", "%", "!", ":", ";",
	}
}
