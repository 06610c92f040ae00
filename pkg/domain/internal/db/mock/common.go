package mocks

// CallLog records arguments of calls to a mocked method, in call order.
type CallLog[T any] []T

func (l CallLog[T]) Times() int {
	return len(l)
}
