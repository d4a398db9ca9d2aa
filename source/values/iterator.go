package values

import (
	"src.elv.sh/pkg/persistent/vector"
)

// Iterates over the elements an array had when the iterator was made. Pushing onto the
// array while iterating doesn't change what the iterator sees.
type ArrayIterator struct {
	VecIt vector.Iterator
}

func NewArrayIterator(arr *Array) *ArrayIterator {
	return &ArrayIterator{VecIt: arr.vec.Iterator()}
}

func (it *ArrayIterator) Unfinished() bool {
	return it.VecIt.HasElem()
}

func (it *ArrayIterator) NextValue() Value {
	valResult := it.VecIt.Elem().(Value)
	it.VecIt.Next()
	return valResult
}
