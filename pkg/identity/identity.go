package identity

import "reflect"

// Identity is a registered decentralized identity. The ID is assigned by the
// wallet provider and never changes.
type Identity struct {
	ID   string `json:"id" yaml:"id"`
	Type Type   `json:"type" yaml:"type"`
}

// Contract is an opaque structured document bound to an application identity.
type Contract map[string]any

// Clone returns a deep copy of c so callers cannot mutate shared state.
func (c Contract) Clone() Contract {
	if c == nil {
		return nil
	}
	out := make(Contract, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the maps, slices and arrays reachable from v,
// whatever their element types. Pointers and struct fields are copied
// shallowly.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

func cloneReflect(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneElem(iter.Value(), v.Type().Elem()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(cloneElem(v.Index(i), v.Type().Elem()))
		}
		return out
	default:
		return v
	}
}

// cloneElem copies a container element of static type typ. Interface
// elements are cloned by their dynamic value.
func cloneElem(e reflect.Value, typ reflect.Type) reflect.Value {
	if e.Kind() != reflect.Interface {
		return cloneReflect(e)
	}
	out := reflect.New(typ).Elem()
	if !e.IsNil() {
		out.Set(reflect.ValueOf(cloneValue(e.Interface())))
	}
	return out
}
