package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes an exported struct field the inspector can draw.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Kind      reflect.Kind
	Index     int
	IsPointer bool
}

// ReflectionCache memoises the drawable fields of component types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t, or nil if t is not a struct.
// Pointer fields report the pointed-to type.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
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
				Kind:      fieldType.Kind(),
				Index:     i,
				IsPointer: isPointer,
			})
		}
	}

	rc.mu.Lock()
	rc.fields[t] = fields
	rc.mu.Unlock()
	return fields
}

var globalReflectionCache = NewReflectionCache()
