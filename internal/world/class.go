package world

// Class is the occlusion class of a block, used for visibility masking.
type Class uint8

const (
	ClassAir Class = iota
	// ClassOpaque is a full cube hiding whatever lies behind it.
	ClassOpaque
	// ClassTransparent is drawn but leaves its neighbours visible (glass, leaves, plants).
	ClassTransparent
	ClassLiquid
	// ClassUnknown marks blocks missing from every registry.
	ClassUnknown
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassAir:
		return "air"
	case ClassOpaque:
		return "opaque"
	case ClassTransparent:
		return "transparent"
	case ClassLiquid:
		return "liquid"
	default:
		return "unknown"
	}
}

// Classifier assigns an occlusion class to a cell.
type Classifier interface {
	Classify(c Cell) Class
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(c Cell) Class

// Classify implements Classifier.
func (f ClassifierFunc) Classify(c Cell) Class { return f(c) }
