package tree

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.jacobcolvin.com/lazytree/node"
	"go.jacobcolvin.com/lazytree/scan"
)

// ResultTag names the shape a [Descriptor] asks [Handle.Access] to produce.
// Descriptors are declared with one of these tags, and an [AccessStore]
// resolves the tag to a concrete conversion at access time, rather than
// the caller hand-rolling a type switch per property.
type ResultTag string

const (
	TagBool     ResultTag = "bool"
	TagInt      ResultTag = "int"
	TagFloat    ResultTag = "float"
	TagString   ResultTag = "string"
	TagTime     ResultTag = "time"
	TagDuration ResultTag = "duration"
	TagURL      ResultTag = "url"
	TagUUID     ResultTag = "uuid"
	TagList     ResultTag = "list"
	TagSet      ResultTag = "set"
	TagMap      ResultTag = "map"
	TagMultiMap ResultTag = "multimap"
	TagObject   ResultTag = "object"
)

// Descriptor declares one named, typed property of an object Handle: which
// member to read, what shape to convert it to, and what to hand back when
// the member is undefined.
type Descriptor struct {
	Name       string
	ResultType ResultTag
	Default    any
	HasDefault bool
}

// AssumedName derives the property name implied by a schema-interface
// method name, following the Java-bean-style getter convention this
// property-descriptor design is modeled on: GetName -> "name", IsEnabled
// -> "enabled". Methods matching neither prefix are lowercased as-is.
func AssumedName(method string) string {
	for _, prefix := range []string{"Get", "Is"} {
		if strings.HasPrefix(method, prefix) && len(method) > len(prefix) {
			rest := method[len(prefix):]

			return strings.ToLower(rest[:1]) + rest[1:]
		}
	}

	if method == "" {
		return method
	}

	return strings.ToLower(method[:1]) + method[1:]
}

// Accessor converts a resolved member Handle into the shape its
// [Descriptor] asked for.
type Accessor func(h Handle, desc Descriptor) (any, error)

// AccessStore is a type-tag keyed registry of [Accessor] functions,
// populated explicitly by the caller: declarative property descriptors
// registered by hand, not a package-level mutable global and not
// reflection-driven registration.
type AccessStore struct {
	mu        sync.RWMutex
	accessors map[ResultTag]Accessor
}

// NewAccessStore returns an empty store.
func NewAccessStore() *AccessStore {
	return &AccessStore{accessors: make(map[ResultTag]Accessor)}
}

// Register binds an Accessor to a result tag, replacing any previous
// registration.
func (s *AccessStore) Register(tag ResultTag, fn Accessor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessors[tag] = fn
}

// Lookup returns the Accessor registered for tag, if any.
func (s *AccessStore) Lookup(tag ResultTag) (Accessor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn, ok := s.accessors[tag]

	return fn, ok
}

// Access resolves desc against this handle's named member: missing with a
// default yields the default, missing without one is a [node.PathError],
// and present values are converted through whatever [Accessor] the
// handle's [AccessStore] has registered for desc.ResultType (falling back
// to plain [Handle.Value] when no store, or no matching registration, is
// present).
func (h Handle) Access(desc Descriptor) (any, error) {
	target := h.Member(desc.Name)

	if target.IsUndefined() {
		if desc.HasDefault {
			return desc.Default, nil
		}

		return nil, &node.PathError{Path: target.path, Reason: fmt.Sprintf("required property %q is undefined", desc.Name)}
	}

	if h.cache != nil && desc.ResultType == TagObject {
		key := cacheKey{path: h.path.String(), name: desc.Name, resultType: desc.ResultType}
		if v, ok := h.cache.get(key); ok {
			return v, nil
		}
	}

	v, err := target.access(desc)
	if err != nil {
		return nil, err
	}

	if h.cache != nil && desc.ResultType == TagObject {
		key := cacheKey{path: h.path.String(), name: desc.Name, resultType: desc.ResultType}
		h.cache.put(key, v)
	}

	return v, nil
}

func (h Handle) access(desc Descriptor) (any, error) {
	if h.accessors == nil {
		return h.Value()
	}

	fn, ok := h.accessors.Lookup(desc.ResultType)
	if !ok {
		return h.Value()
	}

	return fn(h, desc)
}

// DefaultAccessors returns a ready-made [AccessStore] covering every
// built-in [ResultTag]: scalar conversions plus the three collection
// abstractions and a handful of common string-encoded value shapes (time,
// duration, URL, UUID).
func DefaultAccessors() *AccessStore {
	s := NewAccessStore()
	s.Register(TagBool, accessBool)
	s.Register(TagInt, accessInt)
	s.Register(TagFloat, accessFloat)
	s.Register(TagString, accessString)
	s.Register(TagTime, accessTime)
	s.Register(TagDuration, accessDuration)
	s.Register(TagURL, accessURL)
	s.Register(TagUUID, accessUUID)
	s.Register(TagList, accessList)
	s.Register(TagSet, accessSet)
	s.Register(TagMap, accessMap)
	s.Register(TagMultiMap, accessMultiMap)
	s.Register(TagObject, accessObject)

	return s
}

func mustType(h Handle) scan.Kind {
	k, _ := h.Type()

	return k
}

func accessBool(h Handle, _ Descriptor) (any, error) {
	v, err := h.Value()
	if err != nil {
		return nil, err
	}

	b, ok := v.(bool)
	if !ok {
		return nil, &node.TreeError{Op: "convert to bool", Actual: mustType(h)}
	}

	return b, nil
}

func accessInt(h Handle, _ Descriptor) (any, error) {
	v, err := h.Value()
	if err != nil {
		return nil, err
	}

	f, ok := v.(float64)
	if !ok {
		return nil, &node.TreeError{Op: "convert to int", Actual: mustType(h)}
	}

	return int64(f), nil
}

func accessFloat(h Handle, _ Descriptor) (any, error) {
	v, err := h.Value()
	if err != nil {
		return nil, err
	}

	f, ok := v.(float64)
	if !ok {
		return nil, &node.TreeError{Op: "convert to float", Actual: mustType(h)}
	}

	return f, nil
}

func accessString(h Handle, _ Descriptor) (any, error) {
	v, err := h.Value()
	if err != nil {
		return nil, err
	}

	s, ok := v.(string)
	if !ok {
		return nil, &node.TreeError{Op: "convert to string", Actual: mustType(h)}
	}

	return s, nil
}

func accessTime(h Handle, desc Descriptor) (any, error) {
	s, err := accessString(h, desc)
	if err != nil {
		return nil, err
	}

	return time.Parse(time.RFC3339, s.(string))
}

func accessDuration(h Handle, desc Descriptor) (any, error) {
	s, err := accessString(h, desc)
	if err != nil {
		return nil, err
	}

	return time.ParseDuration(s.(string))
}

func accessURL(h Handle, desc Descriptor) (any, error) {
	s, err := accessString(h, desc)
	if err != nil {
		return nil, err
	}

	return url.Parse(s.(string))
}

var uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func accessUUID(h Handle, desc Descriptor) (any, error) {
	s, err := accessString(h, desc)
	if err != nil {
		return nil, err
	}

	str := s.(string)
	if !uuidShape.MatchString(str) {
		return nil, &node.TreeError{Op: "convert to uuid", Actual: mustType(h)}
	}

	return str, nil
}

func accessList(h Handle, _ Descriptor) (any, error) {
	return h.List()
}

func accessSet(h Handle, _ Descriptor) (any, error) {
	list, err := h.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(list))

	out := make([]Handle, 0, len(list))

	for _, item := range list {
		v, err := item.Value()
		if err != nil {
			return nil, err
		}

		key := fmt.Sprint(v)
		if seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, item)
	}

	return out, nil
}

func accessMap(h Handle, _ Descriptor) (any, error) {
	return h.Map()
}

func accessMultiMap(h Handle, _ Descriptor) (any, error) {
	return h.MultiMap()
}

func accessObject(h Handle, _ Descriptor) (any, error) {
	return h, nil
}
