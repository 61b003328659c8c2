package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Each open-ended type decodes through a method-less copy of itself so the
// struct tags apply without recursing into these methods.

func (m Manifest) MarshalJSON() ([]byte, error) {
	type plain Manifest
	return marshalWithExtra(plain(m), m.Extra)
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	type plain Manifest
	var p plain
	extra, err := unmarshalWithExtra(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*m = Manifest(p)
	return nil
}

func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	type plain Manifest
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	extra, err := normalizeExtra(p.Extra)
	if err != nil {
		return err
	}
	p.Extra = extra
	*m = Manifest(p)
	return nil
}

func (b Build) MarshalJSON() ([]byte, error) {
	type plain Build
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *Build) UnmarshalJSON(data []byte) error {
	type plain Build
	var p plain
	extra, err := unmarshalWithExtra(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*b = Build(p)
	return nil
}

func (b *Build) UnmarshalYAML(node *yaml.Node) error {
	type plain Build
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	extra, err := normalizeExtra(p.Extra)
	if err != nil {
		return err
	}
	p.Extra = extra
	*b = Build(p)
	return nil
}

func (n NSIS) MarshalJSON() ([]byte, error) {
	type plain NSIS
	return marshalWithExtra(plain(n), n.Extra)
}

func (n *NSIS) UnmarshalJSON(data []byte) error {
	type plain NSIS
	var p plain
	extra, err := unmarshalWithExtra(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*n = NSIS(p)
	return nil
}

func (n *NSIS) UnmarshalYAML(node *yaml.Node) error {
	type plain NSIS
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	extra, err := normalizeExtra(p.Extra)
	if err != nil {
		return err
	}
	p.Extra = extra
	*n = NSIS(p)
	return nil
}

// marshalWithExtra encodes v and appends the entries of extra whose keys v
// does not already emit.
func marshalWithExtra(v any, extra map[string]any) ([]byte, error) {
	base, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	var emitted map[string]json.RawMessage
	if err := json.Unmarshal(base, &emitted); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		if _, ok := emitted[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(base, []byte("}")))
	for _, k := range keys {
		name, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		value, err := encodeJSON(extra[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalWithExtra decodes data into dst, a pointer to a struct, and
// returns the object members that match none of dst's json field names.
func unmarshalWithExtra(data []byte, dst any) (map[string]any, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for name := range jsonFieldNames(reflect.TypeOf(dst).Elem()) {
		delete(all, name)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// normalizeExtra converts YAML-decoded values to the shapes encoding/json
// produces (float64 numbers, map[string]any objects) so a manifest read back
// from disk compares equal to the one it was written from.
func normalizeExtra(extra map[string]any) (map[string]any, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("unsupported manifest field value: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func jsonFieldNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}

// encodeJSON marshals v without HTML escaping and without a trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
