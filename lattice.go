package lattice

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ID identifies an occupant. IDs are assigned by the caller and only compared
// for equality.
type ID int

func occupantBitmap(ids iter.Seq[ID]) *roaring64.Bitmap {
	rb := roaring64.New()
	for id := range ids {
		rb.Add(uint64(id))
	}
	return rb
}
