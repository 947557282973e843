package dataaccess

// User-facing failure messages. The product surface is Spanish; raw store
// error detail never crosses this boundary.
const (
	MsgUnauthorized = "No autorizado"
	MsgStoreFailure = "Error al acceder a los datos"
)

// Result is the discriminated envelope every data-access function returns.
// Functions are total over their inputs: they never return a Go error to the
// caller, and a missing entity is a successful result with a zero Data value.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps a payload in a success envelope.
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps a user-facing message in a failure envelope.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: msg}
}

// Unauthorized is the envelope returned whenever the session is absent or the
// role check fails. The store is never queried in that case.
func Unauthorized[T any]() Result[T] {
	return Fail[T](MsgUnauthorized)
}
