package product

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// Inspect dumps the structure of any container file: datasets with
// shapes and element types, axes with lengths, and (optionally) the
// attribute blocks. It decodes generically, so it works on all three
// file kinds.
func Inspect(path string, w io.Writer, showAttrs bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var root map[string]interface{}
	if err := msgpack.NewDecoder(f).Decode(&root); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	fmt.Fprintf(w, "container: %s\n", path)
	if kind, ok := root["kind"].(string); ok {
		fmt.Fprintf(w, "kind:      %s\n", kind)
	}

	keys := make([]string, 0, len(root))
	for k := range root {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "kind" {
			continue
		}
		switch v := root[k].(type) {
		case map[string]interface{}:
			if rows, cols, elem, ok := gridInfo(v); ok {
				fmt.Fprintf(w, "[dataset] %-16s (%d, %d)  %s\n", k, rows, cols, elem)
			} else {
				fmt.Fprintf(w, "[attrs]   %s\n", k)
				if showAttrs {
					printAttrs(w, v)
				}
			}
		case []interface{}:
			fmt.Fprintf(w, "[axis]    %-16s (%d,)\n", k, len(v))
		case nil:
			// absent optional dataset
		default:
			fmt.Fprintf(w, "[value]   %-16s %v\n", k, v)
		}
	}
	return nil
}

func gridInfo(m map[string]interface{}) (rows, cols int64, elem string, ok bool) {
	r, rok := asInt(m["rows"])
	c, cok := asInt(m["cols"])
	data, dok := m["data"].([]interface{})
	if !rok || !cok || !dok {
		return 0, 0, "", false
	}
	elem = "empty"
	if len(data) > 0 {
		elem = fmt.Sprintf("%T", data[0])
	}
	return r, c, elem, true
}

func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func printAttrs(w io.Writer, attrs map[string]interface{}) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s := fmt.Sprintf("%v", attrs[k])
		if len(s) > 80 {
			s = s[:77] + "..."
		}
		fmt.Fprintf(w, "          @%s = %s\n", k, s)
	}
}
