package panel

import (
	"strings"

	"github.com/san-kum/carnot/internal/engine"
)

type Field int

const (
	FieldHot Field = iota
	FieldCold
)

func (f Field) String() string {
	if f == FieldCold {
		return "T_C"
	}
	return "T_H"
}

// MaxFieldLen caps how many characters a temperature field accepts.
const MaxFieldLen = 16

// Form holds the two free-text temperature fields and which one has focus.
type Form struct {
	values [2]string
	focus  Field
}

func NewForm(in engine.Inputs) *Form {
	return &Form{values: [2]string{in.Hot, in.Cold}}
}

func (f *Form) Focus() Field          { return f.focus }
func (f *Form) SetFocus(fd Field)     { f.focus = fd }
func (f *Form) Value(fd Field) string { return f.values[fd] }

func (f *Form) FocusNext() {
	if f.focus == FieldHot {
		f.focus = FieldCold
	} else {
		f.focus = FieldHot
	}
}

func (f *Form) Set(fd Field, v string) {
	if len(v) > MaxFieldLen {
		v = v[:MaxFieldLen]
	}
	f.values[fd] = v
}

// Type appends r to the focused field. Only characters that can appear in a
// decimal number are accepted; it reports whether the rune was taken.
func (f *Form) Type(r rune) bool {
	if !strings.ContainsRune("0123456789.-+eE", r) {
		return false
	}
	v := f.values[f.focus]
	if len(v) >= MaxFieldLen {
		return false
	}
	f.values[f.focus] = v + string(r)
	return true
}

func (f *Form) Backspace() {
	v := f.values[f.focus]
	if v != "" {
		f.values[f.focus] = v[:len(v)-1]
	}
}

func (f *Form) Clear() {
	f.values = [2]string{}
	f.focus = FieldHot
}

func (f *Form) Inputs() engine.Inputs {
	return engine.Inputs{Hot: f.values[FieldHot], Cold: f.values[FieldCold]}
}
