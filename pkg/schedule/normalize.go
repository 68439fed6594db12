package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrUnknownPayloadShape is returned when an availability payload matches
// none of the accepted envelope shapes.
var ErrUnknownPayloadShape = errors.New("schedule: unrecognized availability payload shape")

type availabilityEnvelope struct {
	DataObject json.RawMessage `json:"dataObject"`
	Data       json.RawMessage `json:"data"`
}

// NormalizePayload decodes a raw availability payload into a sanitized slot
// list. The canonical envelope is {"dataObject": [...]}; the two historical
// shapes ({"data": [...]} and a bare array) are still decoded for backends
// that predate the contract, but their use is flagged in the logs so drift
// does not go unnoticed.
//
// Decoding is per element: a record that fails to parse, normalize or
// validate is dropped and logged, and never aborts the batch.
func (r *Resolver) NormalizePayload(raw []byte) ([]Slot, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil, ErrUnknownPayloadShape
	}

	var list json.RawMessage
	switch {
	case body[0] == '[':
		r.logger.Printf("[WARN] availability payload uses legacy bare-array shape")
		list = body
	default:
		var env availabilityEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, err
		}
		switch {
		case len(env.DataObject) > 0 && !bytes.Equal(env.DataObject, []byte("null")):
			list = env.DataObject
		case len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")):
			r.logger.Printf("[WARN] availability payload uses legacy data envelope")
			list = env.Data
		default:
			return nil, ErrUnknownPayloadShape
		}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(list, &elements); err != nil {
		return nil, err
	}

	out := make([]Slot, 0, len(elements))
	for i, el := range elements {
		var slot Slot
		if err := json.Unmarshal(el, &slot); err != nil {
			r.logger.Printf("[WARN] availability element %d: %v, skipping", i, err)
			continue
		}
		normalized, ok := Normalize(slot)
		if !ok || !Validate(normalized) {
			r.logger.Printf("[WARN] availability element %d (id=%s) failed validation, skipping", i, slot.Id)
			continue
		}
		out = append(out, normalized)
	}
	return out, nil
}
