package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Tag labels one span of an edit script.
type Tag int

const (
	// Equal means master[I1:I2] equals test[J1:J2].
	Equal Tag = iota
	// Delete means master[I1:I2] has no counterpart; J1 == J2.
	Delete
	// Insert means test[J1:J2] has no counterpart; I1 == I2.
	Insert
	// Replace means master[I1:I2] was replaced by test[J1:J2].
	Replace
)

// String returns the name of the tag.
func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// OpCode is one labeled span of the edit script turning master into test.
// Consecutive opcodes are contiguous on both sides.
type OpCode struct {
	Tag Tag
	I1  int
	I2  int
	J1  int
	J2  int
}

// Tokens splits s into whitespace-delimited tokens.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// OpCodes returns the edit script turning master into test.
// Two empty inputs yield an empty script.
func OpCodes(master, test []string) []OpCode {
	matcher := difflib.NewMatcher(master, test)
	raw := matcher.GetOpCodes()

	codes := make([]OpCode, 0, len(raw))
	for _, op := range raw {
		codes = append(codes, OpCode{
			Tag: fromDifflib(op.Tag),
			I1:  op.I1,
			I2:  op.I2,
			J1:  op.J1,
			J2:  op.J2,
		})
	}
	return codes
}

// fromDifflib maps the single-byte tags of difflib to Tag.
func fromDifflib(tag byte) Tag {
	switch tag {
	case 'd':
		return Delete
	case 'i':
		return Insert
	case 'r':
		return Replace
	default:
		return Equal
	}
}
