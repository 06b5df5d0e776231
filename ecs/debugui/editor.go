package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

var axisLabels = [...]string{"x", "y", "z", "w"}

// EditStruct draws an input for every field of the struct ptr points to and writes edits back
// through ptr. It reports whether any field changed.
func EditStruct(id string, ptr any) bool {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%s: not a struct pointer", id))
		return false
	}
	return editFields(id, v.Elem())
}

func editFields(path string, v reflect.Value) bool {
	changed := false
	for _, f := range Fields(v.Type()) {
		if editValue(f.Label, path+"."+f.Name, v.Field(f.Index)) {
			changed = true
		}
	}
	return changed
}

func editValue(label, path string, v reflect.Value) bool {
	id := label + "##" + path

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &f) && v.CanSet() && !math.IsNaN(float64(f)) {
			v.SetFloat(float64(f))
			return true
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &n) && v.CanSet() && !v.OverflowInt(int64(n)) {
			v.SetInt(int64(n))
			return true
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(min(v.Uint(), math.MaxInt32))
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &n) && v.CanSet() && n >= 0 && !v.OverflowUint(uint64(n)) {
			v.SetUint(uint64(n))
			return true
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(id, &b) && v.CanSet() {
			v.SetBool(b)
			return true
		}

	case reflect.Array:
		if v.Len() <= len(axisLabels) && isFloat(v.Type().Elem()) {
			imgui.Text(label)
			imgui.Indent()
			changed := false
			for i := range v.Len() {
				if editValue(axisLabels[i], fmt.Sprintf("%s[%d]", path, i), v.Index(i)) {
					changed = true
				}
			}
			imgui.Unindent()
			return changed
		}
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))

	case reflect.Struct:
		if imgui.TreeNodeStr(id) {
			changed := editFields(path, v)
			imgui.TreePop()
			return changed
		}

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %d items", label, v.Len()))

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		imgui.Text(fmt.Sprintf("%s: %s", label, v.Type()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
	}
	return false
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}
