package combo

// Accessor reads and writes a piece of state that may live outside the
// widget. The value accessor is how the owner controls the widget; the
// visibility accessor is optional.
type Accessor[T any] interface {
	Get() T
	Set(T)
}

// Ref is an Accessor backed by a private variable.
type Ref[T any] struct {
	v T
}

// NewRef returns a Ref holding v.
func NewRef[T any](v T) *Ref[T] {
	return &Ref[T]{v: v}
}

func (r *Ref[T]) Get() T  { return r.v }
func (r *Ref[T]) Set(v T) { r.v = v }

type funcAccessor[T any] struct {
	get func() T
	set func(T)
}

func (f funcAccessor[T]) Get() T  { return f.get() }
func (f funcAccessor[T]) Set(v T) { f.set(v) }

// Bind turns a getter and a setter into an Accessor. It returns nil unless
// both are given, so a half-supplied pair leaves the widget in internal mode.
func Bind[T any](get func() T, set func(T)) Accessor[T] {
	if get == nil || set == nil {
		return nil
	}
	return funcAccessor[T]{get: get, set: set}
}
