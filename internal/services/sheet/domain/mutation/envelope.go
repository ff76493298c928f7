package mutation

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

// ErrDecodeFailed reports a payload that does not match its mutation type.
var ErrDecodeFailed = apperrors.New(apperrors.CodeMutationDecodeFailed, "mutation payload could not be decoded")

// Envelope is the wire form of a mutation.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type decoder func(payload []byte) (Mutation, error)

var registry = map[Type]decoder{
	TypeSetName:            decodeAs[SetName],
	TypeSetAttribute:       decodeAs[SetAttribute],
	TypeSetAbility:         decodeAs[SetAbility],
	TypeAddSpecialty:       decodeAs[AddSpecialty],
	TypeRemoveSpecialty:    decodeAs[RemoveSpecialty],
	TypeSetWillpowerRating: decodeAs[SetWillpowerRating],
	TypeSpendWillpower:     decodeAs[SpendWillpower],
	TypeGainWillpower:      decodeAs[GainWillpower],
	TypeSetEssenceRating:   decodeAs[SetEssenceRating],
	TypeSpendMotes:         decodeAs[SpendMotes],
	TypeCommitMotes:        decodeAs[CommitMotes],
	TypeUncommitMotes:      decodeAs[UncommitMotes],
	TypeRecoverMotes:       decodeAs[RecoverMotes],
	TypeAddWeapon:          decodeAs[AddWeapon],
	TypeRemoveWeapon:       decodeAs[RemoveWeapon],
	TypeEquipWeapon:        decodeAs[EquipWeapon],
	TypeUnequipWeapon:      decodeAs[UnequipWeapon],
	TypeAddArmor:           decodeAs[AddArmor],
	TypeRemoveArmor:        decodeAs[RemoveArmor],
	TypeEquipArmor:         decodeAs[EquipArmor],
	TypeUnequipArmor:       decodeAs[UnequipArmor],
	TypeAddMerit:           decodeAs[AddMerit],
	TypeRemoveMerit:        decodeAs[RemoveMerit],
	TypeChangeExaltation:   decodeAs[ChangeExaltation],
	TypeAddCharm:           decodeAs[AddCharm],
	TypeRemoveCharm:        decodeAs[RemoveCharm],
	TypeGainExperience:     decodeAs[GainExperience],
	TypeSpendExperience:    decodeAs[SpendExperience],
}

// Types lists every registered mutation type in order.
func Types() []Type {
	return slices.Sorted(maps.Keys(registry))
}

// Registered reports whether t names a mutation.
func Registered(t Type) bool {
	_, ok := registry[t]
	return ok
}

// Encode wraps m in an envelope.
func Encode(m Mutation) (Envelope, error) {
	if m == nil || !Registered(m.Type()) {
		return Envelope{}, ErrUnknownType
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return Envelope{}, apperrors.Wrap(apperrors.CodeMutationDecodeFailed, "encode mutation payload", err)
	}
	return Envelope{Type: m.Type(), Payload: payload}, nil
}

// Decode turns an envelope into its mutation. Unknown payload fields are rejected.
func Decode(envelope Envelope) (Mutation, error) {
	decode, ok := registry[envelope.Type]
	if !ok {
		return nil, ErrUnknownType.With("type", string(envelope.Type))
	}
	payload := envelope.Payload
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("{}")
	}
	m, err := decode(payload)
	if err != nil {
		return nil, &apperrors.Error{
			Code:     apperrors.CodeMutationDecodeFailed,
			Message:  "decode " + string(envelope.Type) + " payload",
			Metadata: map[string]string{"type": string(envelope.Type)},
			Cause:    err,
		}
	}
	return m, nil
}

// ParseEnvelopes reads a JSON array of envelopes, or a single envelope object.
func ParseEnvelopes(data []byte) ([]Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope Envelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeMutationDecodeFailed, "parse mutation envelope", err)
		}
		return []Envelope{envelope}, nil
	}
	var envelopes []Envelope
	if err := json.Unmarshal(trimmed, &envelopes); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMutationDecodeFailed, "parse mutation envelopes", err)
	}
	return envelopes, nil
}

func decodeAs[T Mutation](payload []byte) (Mutation, error) {
	var m T
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
