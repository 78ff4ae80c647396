package payload

import (
	"bytes"
	"encoding/json"
)

// Record is one loosely typed row returned by a webhook.
type Record map[string]any

// DefaultKeys are the wrapper keys every webhook may use, in priority order.
var DefaultKeys = []string{"rows", "result", "data"}

// Decoder extracts the canonical record sequence out of a webhook response.
// Keys are tried after DefaultKeys. IdentifyingFields decide whether a bare
// object is itself a record.
type Decoder struct {
	Keys              []string
	IdentifyingFields []string
}

type shape func(d Decoder, v any) ([]Record, bool)

// Order matters: the first shape that matches wins.
var shapes = []shape{
	wrappedItem,
	bareArray,
	wrappedObject,
	singleRecord,
}

// Decode never fails. Unknown shapes and invalid JSON yield an empty sequence.
func (d Decoder) Decode(body []byte) []Record {
	v, ok := Unmarshal(body)
	if !ok {
		return []Record{}
	}

	return d.DecodeValue(v)
}

func (d Decoder) DecodeValue(v any) []Record {
	for _, try := range shapes {
		if records, ok := try(d, v); ok {
			return records
		}
	}

	return []Record{}
}

// Unmarshal decodes body keeping numbers as json.Number.
func Unmarshal(body []byte) (any, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}

	return v, true
}

func (d Decoder) keys() []string {
	keys := make([]string, 0, len(DefaultKeys)+len(d.Keys))
	keys = append(keys, DefaultKeys...)
	return append(keys, d.Keys...)
}

// [{"rows": [...]}] as produced by automation platforms that wrap every output in an item.
func wrappedItem(d Decoder, v any) ([]Record, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 1 {
		return nil, false
	}

	obj, ok := arr[0].(map[string]any)
	if !ok {
		return nil, false
	}

	if records, ok := d.unwrap(obj); ok {
		return records, true
	}

	// an item whose wrapper holds no rows is "no data", not a record
	if d.hasWrapper(obj) && !d.identifies(obj) {
		return []Record{}, true
	}

	return nil, false
}

func bareArray(_ Decoder, v any) ([]Record, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}

	records := objects(arr)
	if len(records) == 0 {
		return nil, false
	}

	return records, true
}

func wrappedObject(d Decoder, v any) ([]Record, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	return d.unwrap(obj)
}

func singleRecord(d Decoder, v any) ([]Record, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	if d.identifies(obj) {
		return []Record{Record(obj)}, true
	}

	return nil, false
}

func (d Decoder) identifies(obj map[string]any) bool {
	for _, field := range d.IdentifyingFields {
		if val, exists := obj[field]; exists && val != nil {
			return true
		}
	}

	return false
}

// hasWrapper reports whether obj carries an array, possibly empty, under a known key.
func (d Decoder) hasWrapper(obj map[string]any) bool {
	for _, key := range d.keys() {
		if _, ok := obj[key].([]any); ok {
			return true
		}
	}

	return false
}

func (d Decoder) unwrap(obj map[string]any) ([]Record, bool) {
	for _, key := range d.keys() {
		arr, ok := obj[key].([]any)
		if !ok || len(arr) == 0 {
			continue
		}

		if records := objects(arr); len(records) > 0 {
			return records, true
		}
	}

	return nil, false
}

// objects keeps only the object elements of arr.
func objects(arr []any) []Record {
	records := make([]Record, 0, len(arr))
	for _, elem := range arr {
		if obj, ok := elem.(map[string]any); ok {
			records = append(records, Record(obj))
		}
	}

	return records
}

// Field returns the first present, non-nil value among names.
func (r Record) Field(names ...string) any {
	for _, name := range names {
		if v, ok := r[name]; ok && v != nil {
			return v
		}
	}

	return nil
}

func (r Record) Int(names ...string) int64 {
	return Int(r.Field(names...))
}

func (r Record) Count(names ...string) int64 {
	return Count(r.Field(names...))
}

func (r Record) Float(names ...string) float64 {
	return Float(r.Field(names...))
}

func (r Record) String(names ...string) string {
	return String(r.Field(names...))
}

func (r Record) Bool(names ...string) bool {
	return Bool(r.Field(names...))
}

func (r Record) Has(names ...string) bool {
	return r.Field(names...) != nil
}

// Envelope returns the top-level object of a response, looking through a
// one-element item array. Totals sent next to the rows live here.
func Envelope(body []byte) Record {
	v, ok := Unmarshal(body)
	if !ok {
		return Record{}
	}

	if arr, isArr := v.([]any); isArr {
		if len(arr) != 1 {
			return Record{}
		}
		v = arr[0]
	}

	if obj, isObj := v.(map[string]any); isObj {
		return Record(obj)
	}

	return Record{}
}
