package dispatcher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/habitatgo/internal/validator"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeInput populates a handler's input struct from validated arguments by
// reflection. Fields are matched via their `hgo` struct tag; a field whose
// argument is absent (optional, no default) keeps its zero value.
func decodeInput(inputStruct any, args validator.Args) error {
	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("input struct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		lookupName := field.Name
		if tag := field.Tag.Get("hgo"); tag != "" {
			lookupName = strings.Split(tag, ",")[0]
		}
		if lookupName == "-" {
			continue
		}

		val, present := args[lookupName]
		if !present {
			continue
		}

		if err := gocty.FromCtyValue(val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode argument '%s': %w", lookupName, err)
		}
	}
	return nil
}
