package kernel

import (
	"fmt"
	"strconv"

	"laundry/internal/pkg/errs"
)

// ID is a storage-assigned numeric identity. The zero value means "not persisted yet".
type ID int64

// ParseID converts a decimal string into a positive ID.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	id := ID(v)
	if err = id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects zero and negative identifiers.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", int64(id)))
	}
	return nil
}

// IsZero reports whether the identity has not been assigned yet.
func (id ID) IsZero() bool {
	return id == 0
}

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
