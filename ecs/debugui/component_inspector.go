package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

// ComponentInspector shows the components of the selected entity and lets
// scalar fields be edited in place.
type ComponentInspector struct {
	Visible bool
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{Visible: true}
}

func (ci *ComponentInspector) Render(w *ecs.World, selected ecs.Entity, ok bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !w.IsLiving(selected) {
		imgui.Text(fmt.Sprintf("Entity %s is no longer living", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", selected))
	imgui.SameLine()
	if imgui.Button("Destroy") {
		w.DestroyEntity(selected)
	}
	imgui.Separator()

	for _, ct := range w.ComponentTypes(selected) {
		component, err := w.Component(selected, ct.Id)
		if err != nil {
			continue
		}

		if imgui.TreeNodeStr(ct.Name()) {
			renderComponent(component, ct.Type)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws the fields of a component. component must be a
// pointer so edits land in storage.
func renderComponent(component any, compType reflect.Type) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if compType.Kind() != reflect.Struct {
		renderValue(compType.Name(), val)
		return
	}

	for _, field := range globalReflectionCache.GetFields(compType) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderValue(field.Name, fieldVal)
	}
}

func renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		label(name, 150)
		if imgui.InputInt("##"+name, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		label(name, 150)
		if imgui.InputInt("##"+name, &v) && val.CanSet() && v >= 0 {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		label(name, 150)
		if imgui.InputFloat("##"+name, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		label(name, 200)
		if imgui.InputTextWithHint("##"+name, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderComponent(val.Addr().Interface(), val.Type())
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		if imgui.TreeNodeStr(fmt.Sprintf("%s: map[%d items]", name, val.Len())) {
			iter := val.MapRange()
			for iter.Next() {
				imgui.BulletText(fmt.Sprintf("%v: %v", iter.Key().Interface(), iter.Value().Interface()))
			}
			imgui.TreePop()
		}

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}

// label draws a field label and sizes the input that follows it.
func label(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}
