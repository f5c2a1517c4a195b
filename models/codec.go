package models

import (
	"encoding/json"
	"fmt"
)

// Extra holds JSON keys that the typed struct does not know about. Several
// client screens wrote overlapping shapes into the same records over time,
// so a decode/encode round trip must not drop fields it does not model.
type Extra map[string]json.RawMessage

// splitExtra decodes data into v and returns every top-level key that did
// not land in one of v's typed fields. Typed fields win on conflict when the
// record is re-encoded.
func splitExtra(data []byte, v any) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	own, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(own, &known); err != nil {
		return nil, err
	}

	for k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// mergeExtra encodes v and splices the preserved unknown keys back in.
func mergeExtra(v any, extra Extra) ([]byte, error) {
	own, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return own, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(own, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = raw
		}
	}
	return json.Marshal(merged)
}

// Name normalizes the loosely typed fullName field: older records store a
// plain string, some store {"name": "..."}. It always encodes back as a
// plain string.
type Name string

func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Name(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*n = Name(obj.Name)
		return nil
	}
	// null or an unexpected shape decodes to empty rather than failing the
	// whole collection
	*n = ""
	return nil
}

func (n Name) String() string { return string(n) }
