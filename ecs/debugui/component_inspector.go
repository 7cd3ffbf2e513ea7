package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/sparsecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{selectedEntity: ecs.Invalid}
}

// Render shows every component attached to e and lets its exported fields be
// edited in place.
func (ci *ComponentInspectorComponent) Render(w *ecs.World, e ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = e

	if !e.Valid() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	pools := attachedPools(w, e)
	if len(pools) == 0 {
		imgui.Text(fmt.Sprintf("Entity %d has no components", e))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e))
	imgui.Text(fmt.Sprintf("Components: %d", len(pools)))
	imgui.Separator()

	for _, pool := range pools {
		ptr := pool.GetPointer(e)
		if ptr == nil {
			continue
		}

		compType := pool.ComponentType()
		if imgui.TreeNodeStr(compType.String()) {
			ci.renderValue(compType.String(), reflect.ValueOf(ptr).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// attachedPools returns the pools holding a component for e, in creation order.
func attachedPools(w *ecs.World, e ecs.Entity) []ecs.AnyPool {
	var pools []ecs.AnyPool
	for _, pool := range w.Pools() {
		if pool.Contains(e) {
			pools = append(pools, pool)
		}
	}
	return pools
}

func (ci *ComponentInspectorComponent) renderValue(id string, val reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal, ok := fieldValue(val, field)
		if !ok {
			imgui.Text(fmt.Sprintf("%s: nil", field.Name))
			continue
		}
		ci.renderField(id+"."+field.Name, field.Name, fieldVal)
	}
}

func (ci *ComponentInspectorComponent) renderField(id, name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	label := "##" + id

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) {
			assignInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 {
			assignUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) {
			assignFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+label, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + label) {
			ci.renderValue(id, val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// assignInt stores v in an addressable signed integer field. It reports false
// when the field is read-only or v does not fit.
func assignInt(val reflect.Value, v int64) bool {
	if !val.CanSet() || val.OverflowInt(v) {
		return false
	}
	val.SetInt(v)
	return true
}

func assignUint(val reflect.Value, v uint64) bool {
	if !val.CanSet() || val.OverflowUint(v) {
		return false
	}
	val.SetUint(v)
	return true
}

func assignFloat(val reflect.Value, v float64) bool {
	if !val.CanSet() || val.OverflowFloat(v) {
		return false
	}
	val.SetFloat(v)
	return true
}
