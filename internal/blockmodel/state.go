package blockmodel

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/Faultbox/blockmesh/internal/world"
	"github.com/Faultbox/blockmesh/pkg/formats"
)

// Candidate is one weighted model choice of a variant or multipart rule.
type Candidate struct {
	Model  *Model
	X, Y   int
	UVLock bool
	Weight int
}

// Instance is a model placed with its blockstate rotation.
type Instance struct {
	Model  *Model
	X, Y   int
	UVLock bool
}

func (c Candidate) instance() Instance {
	return Instance{Model: c.Model, X: c.X, Y: c.Y, UVLock: c.UVLock}
}

// Variant selects models by an exact set of property values.
type Variant struct {
	Key    string
	Props  world.Properties
	Models []Candidate
}

// Matches reports whether props holds every pair of the variant key.
func (v Variant) Matches(props world.Properties) bool {
	for k, want := range v.Props {
		if got, ok := props[k]; !ok || got != want {
			return false
		}
	}
	return true
}

// MultipartRule contributes models whenever its condition holds.
type MultipartRule struct {
	When   *formats.Condition
	Models []Candidate
}

// Matches reports whether the rule applies to props.
func (r MultipartRule) Matches(props world.Properties) bool {
	return r.When.Matches(props)
}

// BlockState resolves the models of one block name. It is immutable.
type BlockState struct {
	Name string
	// Variants are ordered most specific first.
	Variants  []Variant
	Multipart []MultipartRule
}

// parseVariantKey splits "k=v,k=v". Keys without a value, such as the
// "normal" key of old packs, match every property map.
func parseVariantKey(key string) world.Properties {
	props := world.Properties{}
	if key == "" {
		return props
	}
	for _, pair := range strings.Split(key, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

func sortVariants(vs []Variant) {
	sort.SliceStable(vs, func(i, j int) bool {
		if len(vs[i].Props) != len(vs[j].Props) {
			return len(vs[i].Props) > len(vs[j].Props)
		}
		return vs[i].Key < vs[j].Key
	})
}

// Candidates returns the weighted lists that apply to props: the matching
// variant's list first, then one list per satisfied multipart rule.
func (b *BlockState) Candidates(props world.Properties) [][]Candidate {
	var out [][]Candidate
	for _, v := range b.Variants {
		if v.Matches(props) {
			out = append(out, v.Models)
			break
		}
	}
	for _, r := range b.Multipart {
		if r.Matches(props) {
			out = append(out, r.Models)
		}
	}
	return out
}

// Resolve returns the models to draw for props, choosing one candidate per
// applicable list.
func (b *BlockState) Resolve(props world.Properties, choose Chooser) []Instance {
	lists := b.Candidates(props)
	out := make([]Instance, 0, len(lists))
	for _, list := range lists {
		if len(list) == 0 {
			continue
		}
		out = append(out, list[pick(choose, list)].instance())
	}
	return out
}

// Chooser picks an index from a list of positive weights.
type Chooser interface {
	Choose(weights []int) int
}

func pick(choose Chooser, list []Candidate) int {
	if len(list) == 1 || choose == nil {
		return 0
	}
	weights := make([]int, len(list))
	for i, c := range list {
		weights[i] = c.Weight
	}
	i := choose.Choose(weights)
	if i < 0 || i >= len(list) {
		return 0
	}
	return i
}

// WeightedChooser draws an index with probability proportional to its weight.
type WeightedChooser struct {
	Rand Random
}

// Choose implements Chooser.
func (w WeightedChooser) Choose(weights []int) int {
	total := 0
	for _, wt := range weights {
		total += wt
	}
	if total <= 0 {
		return 0
	}
	r := w.Rand.IntN(total)
	for i, wt := range weights {
		if r < wt {
			return i
		}
		r -= wt
	}
	return len(weights) - 1
}

// LockedRand is a seeded Random that may be shared between workers.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand creates a random source from a seed.
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// IntN implements Random.
func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
