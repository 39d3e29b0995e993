package exprerrors

// unwrapInterface is asserted by every typed error so errors.Is/As reach the sentinel cause.
type unwrapInterface interface {
	Unwrap() error
}
