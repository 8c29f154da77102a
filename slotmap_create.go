package slotmap

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slog"
)

// StorageAlgorithm selects the backing storage strategy for a Map.
type StorageAlgorithm uint32

const (
	// StoragePaged keeps slots in fixed-size pages. Growth appends a page and
	// never moves existing slots, so value pointers from Get stay valid until
	// their slot's generation changes. This is the default.
	StoragePaged StorageAlgorithm = iota
	// StorageContiguous keeps slots in one flat slice. Indexing is slightly
	// cheaper than paged storage, but growth reallocates the slice and
	// invalidates previously returned value pointers. Only element types that
	// are re-fetched through their handle on every access should use it.
	StorageContiguous
)

var storageAlgorithmMapping = map[StorageAlgorithm]string{
	StoragePaged:      "StoragePaged",
	StorageContiguous: "StorageContiguous",
}

func (a StorageAlgorithm) String() string {
	return storageAlgorithmMapping[a]
}

const (
	// defaultItemsPerPage is used as the page size when none is provided via
	// CreateOptions.
	defaultItemsPerPage = 1024
	// defaultMinimumAvailable is used as the free handle floor when none is
	// provided via CreateOptions.
	defaultMinimumAvailable = 256
)

// CreateOptions contains optional settings when creating a Map
type CreateOptions struct {
	// ItemsPerPage is the number of slots in each storage page, and therefore
	// also the initial capacity, since the first page is allocated eagerly.
	// It must be a power of two so that paged addressing stays a shift and a
	// mask.
	ItemsPerPage int
	// MinimumAvailable is the smallest number of queued free handles the Map
	// tolerates before growing ahead of the next insert. Raising it spreads
	// reuse across more distinct slots, which slows generation exhaustion
	// under insert/remove churn. It must stay strictly below ItemsPerPage,
	// otherwise every insert after the first would force a growth.
	MinimumAvailable int
	// Storage selects the backing storage strategy
	Storage StorageAlgorithm
}

// New creates an empty Map with its first storage page allocated eagerly.
//
// logger - Debug-level records are written on storage growth and slot
// retirement. Pass nil to use slog.Default.
//
// options - Optional parameters: it is valid to leave all the fields blank
func New[T any](logger *slog.Logger, options CreateOptions) (*Map[T], error) {
	if logger == nil {
		logger = slog.Default()
	}

	itemsPerPage := options.ItemsPerPage
	if itemsPerPage == 0 {
		itemsPerPage = defaultItemsPerPage
	}
	minimumAvailable := options.MinimumAvailable
	if minimumAvailable == 0 {
		minimumAvailable = defaultMinimumAvailable
	}

	if itemsPerPage < 0 || uint32(itemsPerPage) > MaxSlots {
		return nil, errors.Wrapf(ConfigurationError, "CreateOptions.ItemsPerPage is %d, but at most %d slots are addressable", itemsPerPage, MaxSlots)
	}
	if err := CheckPow2(uint(itemsPerPage), "CreateOptions.ItemsPerPage"); err != nil {
		return nil, err
	}
	if minimumAvailable < 0 || minimumAvailable >= itemsPerPage {
		return nil, errors.Wrapf(ConfigurationError, "CreateOptions.MinimumAvailable is %d, but it must stay strictly below the initial capacity %d", minimumAvailable, itemsPerPage)
	}

	var store slotStore[T]
	switch options.Storage {
	case StoragePaged:
		store = newPagedStore[T](itemsPerPage)
	case StorageContiguous:
		store = newContiguousStore[T](itemsPerPage)
	default:
		return nil, errors.Wrapf(ConfigurationError, "CreateOptions.Storage is %d, which names no storage algorithm", options.Storage)
	}

	m := &Map[T]{
		store:            store,
		freeList:         newFreeList(itemsPerPage),
		minimumAvailable: minimumAvailable,
		retired:          swiss.NewMap[uint32, struct{}](8),
		logger:           logger,
	}
	m.grow()

	return m, nil
}
