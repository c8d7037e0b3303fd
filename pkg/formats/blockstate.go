// Block state JSON format parser.
package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
)

// Block state format errors.
var (
	ErrMalformedBlockState = errors.New("malformed block state")
	ErrEmptyBlockState     = errors.New("block state has neither variants nor multipart")
)

// BlockStateFile is the JSON document describing how one block name maps to models.
type BlockStateFile struct {
	Variants  map[string]ModelRefList `json:"variants"`
	Multipart []MultipartDef          `json:"multipart"`
}

// ModelRef points at a model with a whole-block rotation.
type ModelRef struct {
	Model  string `json:"model"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	UVLock bool   `json:"uvlock"`
	Weight int    `json:"weight"`
}

// EffectiveWeight returns the weight, defaulting to 1.
func (r ModelRef) EffectiveWeight() int {
	if r.Weight <= 0 {
		return 1
	}
	return r.Weight
}

// ModelRefList is either a single model reference or an array of weighted ones.
type ModelRefList []ModelRef

// UnmarshalJSON accepts an object or an array of objects.
func (l *ModelRefList) UnmarshalJSON(data []byte) error {
	var refs []ModelRef
	if err := json.Unmarshal(data, &refs); err == nil {
		*l = refs
		return nil
	}

	var single ModelRef
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = ModelRefList{single}
	return nil
}

// MultipartDef applies models when its condition holds.
type MultipartDef struct {
	When  *Condition   `json:"when"`
	Apply ModelRefList `json:"apply"`
}

// Condition is a predicate over block properties. Terms must all hold; a
// term value may list alternatives separated by "|". OR and AND nest
// sub-conditions.
type Condition struct {
	Terms map[string][]string
	Or    []Condition
	And   []Condition
}

// UnmarshalJSON decodes {"key":"a|b"}, {"OR":[...]} and {"AND":[...]} forms.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, val := range raw {
		switch key {
		case "OR":
			if err := json.Unmarshal(val, &c.Or); err != nil {
				return fmt.Errorf("OR: %w", err)
			}
		case "AND":
			if err := json.Unmarshal(val, &c.And); err != nil {
				return fmt.Errorf("AND: %w", err)
			}
		default:
			s, err := scalarString(val)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			if c.Terms == nil {
				c.Terms = make(map[string][]string)
			}
			c.Terms[key] = strings.Split(s, "|")
		}
	}
	return nil
}

// scalarString accepts string, bool and number values.
func scalarString(val json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(val, &s); err == nil {
		return s, nil
	}
	var b bool
	if err := json.Unmarshal(val, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	var n json.Number
	if err := json.Unmarshal(val, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported value %s", val)
}

// Matches evaluates the condition. A nil condition always holds; a property
// missing from props makes its term false.
func (c *Condition) Matches(props map[string]string) bool {
	if c == nil {
		return true
	}
	for key, alts := range c.Terms {
		v, ok := props[key]
		if !ok || !contains(alts, v) {
			return false
		}
	}
	for i := range c.And {
		if !c.And[i].Matches(props) {
			return false
		}
	}
	if len(c.Or) > 0 {
		for i := range c.Or {
			if c.Or[i].Matches(props) {
				return true
			}
		}
		return false
	}
	return true
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ParseBlockState parses a block state document. Comments are tolerated.
func ParseBlockState(data []byte) (*BlockStateFile, error) {
	var bs BlockStateFile
	if err := jsonc.Unmarshal(data, &bs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlockState, err)
	}
	if len(bs.Variants) == 0 && len(bs.Multipart) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBlockState, ErrEmptyBlockState)
	}
	for key, refs := range bs.Variants {
		if len(refs) == 0 {
			return nil, fmt.Errorf("%w: variant %q has no models", ErrMalformedBlockState, key)
		}
	}
	for i, part := range bs.Multipart {
		if len(part.Apply) == 0 {
			return nil, fmt.Errorf("%w: multipart rule %d applies no models", ErrMalformedBlockState, i)
		}
	}
	return &bs, nil
}
