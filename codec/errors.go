package codec

import "fmt"

// UnrepresentableError reports a value that cannot be re-emitted because no
// stable dotted path exists for it. It is fatal to the dump operation.
type UnrepresentableError struct {
	Value  any
	Reason string
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("cannot represent %T: %s", e.Value, e.Reason)
}
