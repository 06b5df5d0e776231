package debugui

import (
	"reflect"
	"strings"
	"sync"
)

// Field describes one exported struct field the editors know how to show.
type Field struct {
	Name  string
	Label string
	Index int
	Type  reflect.Type
}

var fieldCache sync.Map // reflect.Type -> []Field

// Fields returns the exported fields of struct type t. Labels come from the json tag when
// present so that panels read like the config file. Fields tagged json:"-" are skipped.
func Fields(t reflect.Type) []Field {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}

	var fields []Field
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			label := sf.Name
			if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == "-" {
				continue
			} else if tag != "" {
				label = tag
			}
			fields = append(fields, Field{Name: sf.Name, Label: label, Index: i, Type: sf.Type})
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]Field)
}
