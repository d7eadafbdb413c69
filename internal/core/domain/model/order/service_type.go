package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// ServiceType is the kind of treatment ordered for an order or a line.
type ServiceType int

const (
	ServiceUnknown ServiceType = iota
	WashIron
	DryCleaning
	WashOnly
	IronOnly
)

// DefaultServiceType is used when a stored or requested value cannot be mapped.
const DefaultServiceType = WashIron

var serviceExternal = map[ServiceType]string{
	WashIron:    "wash_iron",
	DryCleaning: "dry_cleaning",
	WashOnly:    "wash_only",
	IronOnly:    "iron_only",
}

func ServiceTypes() []ServiceType {
	return []ServiceType{WashIron, DryCleaning, WashOnly, IronOnly}
}

func (s ServiceType) Validate() error {
	if _, ok := serviceExternal[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service is invalid", fmt.Errorf("%d is not a valid service type", s))
	}
	return nil
}

func (s ServiceType) String() string {
	if str, ok := serviceExternal[s]; ok {
		return str
	}
	return "unknown"
}
