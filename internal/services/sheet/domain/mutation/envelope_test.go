package mutation

import (
	"errors"
	"testing"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

func TestRegistryCoversEveryType(t *testing.T) {
	if got := len(Types()); got != 28 {
		t.Fatalf("registered types = %d, want 28", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []Mutation{
		CommitMotes{Name: "artifact-X", Amount: 10, First: pool.Peripheral},
		ChangeExaltation{Target: exaltation.Target{Type: exaltation.Solar, Caste: "dawn"}},
	}
	for _, want := range tests {
		envelope, err := Encode(want)
		if err != nil {
			t.Fatalf("encode %s: %v", want.Type(), err)
		}
		got, err := Decode(envelope)
		if err != nil {
			t.Fatalf("decode %s: %v", want.Type(), err)
		}
		if got != want {
			t.Fatalf("decoded %#v, want %#v", got, want)
		}
	}
}

func TestChangeExaltationPayloadIsFlat(t *testing.T) {
	envelope := Envelope{Type: TypeChangeExaltation, Payload: []byte(`{"type":"lunar","caste":"no_moon"}`)}
	got, err := Decode(envelope)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(ChangeExaltation).Type() != TypeChangeExaltation || got.(ChangeExaltation).Caste != "no_moon" {
		t.Fatalf("decoded %#v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(Envelope{Type: "spell.cast"}); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	bad := Envelope{Type: TypeSpendMotes, Payload: []byte(`{"amount":"three"}`)}
	if _, err := Decode(bad); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("err = %v, want ErrDecodeFailed", err)
	}
	extra := Envelope{Type: TypeRecoverMotes, Payload: []byte(`{"amount":3,"pool":"personal"}`)}
	if _, err := Decode(extra); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("err = %v, want ErrDecodeFailed", err)
	}
}

func TestParseEnvelopes(t *testing.T) {
	list, err := ParseEnvelopes([]byte(`[{"type":"willpower.spend","payload":{"amount":1}},{"type":"experience.gain","payload":{"amount":2}}]`))
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %v err = %v", list, err)
	}
	single, err := ParseEnvelopes([]byte(` {"type":"willpower.gain","payload":{"amount":1}}`))
	if err != nil || len(single) != 1 || single[0].Type != TypeGainWillpower {
		t.Fatalf("single = %v err = %v", single, err)
	}
	if _, err := ParseEnvelopes([]byte(`nope`)); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("err = %v, want ErrDecodeFailed", err)
	}
}
