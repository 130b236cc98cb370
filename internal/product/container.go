package product

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Ext is the container file extension.
const Ext = ".skp"

// Container kind markers, stored so the inspector and readers can
// tell file flavors apart.
const (
	KindRaw    = "raw_spectrogram"
	KindStream = "sk_stream"
	KindClean  = "rfi_clean"
)

// writeContainer serializes v to path. A pre-existing destination is
// removed before writing begins; there is no atomic rename, so an
// interrupted run may leave an incomplete artifact. The overwrote
// return lets callers surface the advisory warning.
func writeContainer(path string, v interface{}) (overwrote bool, err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		overwrote = true
		if err := os.Remove(path); err != nil {
			return true, fmt.Errorf("removing existing destination %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return overwrote, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := msgpack.NewEncoder(f).Encode(v); err != nil {
		return overwrote, fmt.Errorf("encoding %s: %w", path, err)
	}
	return overwrote, nil
}

// readContainer deserializes path into v.
func readContainer(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
