package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns an integer identity for t, taken from the address of its
// runtime type descriptor. Descriptors are never moved or freed.
func typeKey(t reflect.Type) int {
	return int(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

func typeKeyFor[T any]() int {
	return typeKey(reflect.TypeFor[T]())
}
