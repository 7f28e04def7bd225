package deck

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FaceKind says how a trait's printed value is derived.
// The zero value is FaceVariable, so a missing face value reads as variable.
type FaceKind int

const (
	FaceVariable FaceKind = iota
	FaceFixed
	FaceCopyFirstDominant
)

const (
	variableName     = "variable"
	copyDominantName = "copy_1st_dominant"
)

// FaceValue is a trait's base value: a number, a "variable" sentinel whose worth
// comes from the bonus rule, or a copy of the first other dominant in the pile.
type FaceValue struct {
	Kind  FaceKind
	Value int
}

// Fixed returns a numeric face value.
func Fixed(v int) FaceValue {
	return FaceValue{Kind: FaceFixed, Value: v}
}

// Variable returns the variable sentinel.
func Variable() FaceValue {
	return FaceValue{Kind: FaceVariable}
}

// CopyFirstDominant returns the copy-first-dominant sentinel.
func CopyFirstDominant() FaceValue {
	return FaceValue{Kind: FaceCopyFirstDominant}
}

// Number returns the printed number, or 0 for the sentinels.
func (f FaceValue) Number() int {
	if f.Kind != FaceFixed {
		return 0
	}
	return f.Value
}

func (f FaceValue) String() string {
	switch f.Kind {
	case FaceVariable:
		return variableName
	case FaceCopyFirstDominant:
		return copyDominantName
	}
	return strconv.Itoa(f.Value)
}

func (f *FaceValue) parse(raw string) error {
	switch raw {
	case "", "null", "~", variableName:
		*f = Variable()
		return nil
	case copyDominantName:
		*f = CopyFirstDominant()
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid face value %q", raw)
	}
	*f = Fixed(v)
	return nil
}

// MarshalJSON writes a number, null for variable, or the copy sentinel string.
func (f FaceValue) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FaceVariable:
		return []byte("null"), nil
	case FaceCopyFirstDominant:
		return json.Marshal(copyDominantName)
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// UnmarshalJSON accepts a number, null, or a sentinel string.
func (f *FaceValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return f.parse(s)
	}
	return f.parse(string(b))
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (f *FaceValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: face value must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*f = Variable()
		return nil
	}
	return f.parse(node.Value)
}
