package shape

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Container tokens written for values whose container type has no
// registered name of its own. Named container types persist their
// registered name instead and classify by their underlying kind.
const (
	TokenCollection  = "collection"
	TokenMap         = "map"
	tokenArrayPrefix = "array:"
)

// Kind classifies a stored value into one of the four shape variants
type Kind int

const (
	Scalar Kind = iota
	Array
	Collection
	Map
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Collection:
		return "collection"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape is the fully resolved decode target for a stored record.
// Container is the parameterized type the typed decode pass materializes;
// for scalars it equals Elem. Key is set only for the Map kind.
type Shape struct {
	Kind      Kind
	Container reflect.Type
	Elem      reflect.Type
	Key       reflect.Type
}

// Resolution errors
var (
	ErrUnknownType    = &ResolveError{"unknown type name"}
	ErrNotContainer   = &ResolveError{"container type is not a collection, array, or map"}
	ErrMissingKeyType = &ResolveError{"map container without a key type name"}
)

// ResolveError represents a shape resolution failure
type ResolveError struct {
	Message string
}

func (e *ResolveError) Error() string {
	return e.Message
}

// Resolver classifies the type-name metadata carried by a stored record
// into a Shape. It is the replacement for reflective class lookup by
// string: every name must resolve through the closed registry.
type Resolver struct {
	reg *Registry
}

// NewResolver creates a resolver over the given registry
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Registry returns the resolver's type registry
func (r *Resolver) Registry() *Registry {
	return r.reg
}

// Resolve builds the decode target for the given type-name triple.
//
// An empty containerType means the value is a bare scalar. Otherwise the
// container name must resolve to a slice, array, or map type, either via
// the registry (named containers) or via the builtin tokens. Map
// containers additionally require keyType to resolve.
func (r *Resolver) Resolve(dataType, containerType, keyType string) (Shape, error) {
	elem, ok := r.reg.Lookup(dataType)
	if !ok {
		return Shape{}, fmt.Errorf("data type %q: %w", dataType, ErrUnknownType)
	}

	if containerType == "" {
		return Shape{Kind: Scalar, Container: elem, Elem: elem}, nil
	}

	if container, ok := r.reg.Lookup(containerType); ok {
		return r.classifyRegistered(container, containerType, elem, keyType)
	}

	switch {
	case containerType == TokenCollection:
		return Shape{Kind: Collection, Container: reflect.SliceOf(elem), Elem: elem}, nil

	case strings.HasPrefix(containerType, tokenArrayPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(containerType, tokenArrayPrefix))
		if err != nil || n < 0 {
			return Shape{}, fmt.Errorf("container type %q: %w", containerType, ErrUnknownType)
		}
		return Shape{Kind: Array, Container: reflect.ArrayOf(n, elem), Elem: elem}, nil

	case containerType == TokenMap:
		key, err := r.resolveKey(keyType)
		if err != nil {
			return Shape{}, err
		}
		return Shape{Kind: Map, Container: reflect.MapOf(key, elem), Elem: elem, Key: key}, nil

	default:
		return Shape{}, fmt.Errorf("container type %q: %w", containerType, ErrUnknownType)
	}
}

// classifyRegistered classifies a container that resolved through the
// registry by its underlying kind.
func (r *Resolver) classifyRegistered(container reflect.Type, containerType string, elem reflect.Type, keyType string) (Shape, error) {
	switch container.Kind() {
	case reflect.Slice:
		return Shape{Kind: Collection, Container: container, Elem: elem}, nil

	case reflect.Array:
		return Shape{Kind: Array, Container: container, Elem: elem}, nil

	case reflect.Map:
		key, err := r.resolveKey(keyType)
		if err != nil {
			return Shape{}, err
		}
		return Shape{Kind: Map, Container: container, Elem: elem, Key: key}, nil

	default:
		return Shape{}, fmt.Errorf("container type %q resolves to %s: %w", containerType, container, ErrNotContainer)
	}
}

func (r *Resolver) resolveKey(keyType string) (reflect.Type, error) {
	if keyType == "" {
		return nil, ErrMissingKeyType
	}

	key, ok := r.reg.Lookup(keyType)
	if !ok {
		return nil, fmt.Errorf("key type %q: %w", keyType, ErrUnknownType)
	}
	if !key.Comparable() {
		return nil, fmt.Errorf("key type %q is not comparable: %w", keyType, ErrUnknownType)
	}

	return key, nil
}

// Describe derives the type-name triple persisted for a value, the
// inverse of Resolve. Named containers registered in reg keep their
// registered name; anonymous slices, arrays, and maps fall back to the
// builtin tokens. Every element and key type involved must be
// registered.
func Describe(reg *Registry, v any) (dataType, containerType, keyType string, err error) {
	if v == nil {
		return "", "", "", fmt.Errorf("describe: nil value: %w", ErrUnknownType)
	}

	t := reflect.TypeOf(v)

	if name, ok := reg.NameOf(t); ok {
		switch t.Kind() {
		case reflect.Slice, reflect.Array:
			dataType, err = elemName(reg, t.Elem())
			return dataType, name, "", err

		case reflect.Map:
			dataType, err = elemName(reg, t.Elem())
			if err != nil {
				return "", "", "", err
			}
			keyType, err = elemName(reg, t.Key())
			return dataType, name, keyType, err

		default:
			return name, "", "", nil
		}
	}

	switch t.Kind() {
	case reflect.Slice:
		dataType, err = elemName(reg, t.Elem())
		return dataType, TokenCollection, "", err

	case reflect.Array:
		dataType, err = elemName(reg, t.Elem())
		return dataType, fmt.Sprintf("%s%d", tokenArrayPrefix, t.Len()), "", err

	case reflect.Map:
		dataType, err = elemName(reg, t.Elem())
		if err != nil {
			return "", "", "", err
		}
		keyType, err = elemName(reg, t.Key())
		return dataType, TokenMap, keyType, err

	default:
		return "", "", "", fmt.Errorf("describe: unregistered type %s: %w", t, ErrUnknownType)
	}
}

func elemName(reg *Registry, t reflect.Type) (string, error) {
	name, ok := reg.NameOf(t)
	if !ok {
		return "", fmt.Errorf("unregistered type %s: %w", t, ErrUnknownType)
	}
	return name, nil
}
