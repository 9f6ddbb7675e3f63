package binding

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/syrupdev/syrup"
)

func typeMismatch(want string, rv reflect.Value) error {
	return syrup.NewMessageError(fmt.Sprintf("binding: type mismatch: expected %s, got Go type %s", want, rv.Type()), nil)
}

func rangeErr(bi *big.Int, rv reflect.Value) error {
	return syrup.NewMessageError(fmt.Sprintf("binding: integer %s out of range for %s", bi.String(), rv.Type()), nil)
}
