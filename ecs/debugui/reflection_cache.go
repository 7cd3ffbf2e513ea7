package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one editable field of a component type. Index is -1 for
// the pseudo-field that stands for a non-struct component's own value.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// Self reports whether the field is the component value itself.
func (f FieldInfo) Self() bool {
	return f.Index < 0
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t. For non-struct types it returns
// a single field named after the type.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	fields := describeFields(t)

	rc.mu.Lock()
	rc.fieldCache[t] = fields
	rc.mu.Unlock()
	return fields
}

func describeFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		name := t.Name()
		if name == "" {
			name = "value"
		}
		return []FieldInfo{{Name: name, Type: t, Index: -1}}
	}

	fields := make([]FieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		isPointer := fieldType.Kind() == reflect.Ptr
		if isPointer {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      field.Name,
			Type:      fieldType,
			Index:     i,
			IsPointer: isPointer,
		})
	}
	return fields
}

// fieldValue resolves f inside v. It reports false for nil pointer fields.
func fieldValue(v reflect.Value, f FieldInfo) (reflect.Value, bool) {
	if f.Self() {
		return v, true
	}
	fv := v.Field(f.Index)
	if f.IsPointer {
		if fv.IsNil() {
			return fv, false
		}
		fv = fv.Elem()
	}
	return fv, true
}

var globalReflectionCache = NewReflectionCache()
