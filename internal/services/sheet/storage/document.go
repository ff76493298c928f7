package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
)

// SchemaVersion is the version written by EncodeDocument.
const SchemaVersion = 2

// ErrSchemaUnsupported rejects documents with an unknown schema version.
var ErrSchemaUnsupported = apperrors.New(apperrors.CodeSnapshotSchemaUnsupported, "unsupported snapshot schema version")

// Document is the persisted form of a character.
type Document struct {
	SchemaVersion int                 `json:"schema_version"`
	CharacterID   string              `json:"character_id"`
	Snapshot      *character.Snapshot `json:"snapshot"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewDocument wraps snapshot at the current schema version.
func NewDocument(snapshot *character.Snapshot, updatedAt time.Time) Document {
	return Document{
		SchemaVersion: SchemaVersion,
		CharacterID:   snapshot.ID,
		Snapshot:      snapshot,
		UpdatedAt:     updatedAt.UTC(),
	}
}

// EncodeDocument serializes doc at the current schema version.
func EncodeDocument(doc Document) ([]byte, error) {
	if doc.Snapshot == nil {
		return nil, fmt.Errorf("document snapshot is required")
	}
	doc.SchemaVersion = SchemaVersion
	if doc.CharacterID == "" {
		doc.CharacterID = doc.Snapshot.ID
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument upgrades data to the current schema version, decodes it and
// verifies the snapshot.
func DecodeDocument(data []byte) (Document, error) {
	upgraded, err := Upgrade(data)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(upgraded, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Snapshot == nil {
		return Document{}, fmt.Errorf("decode document: snapshot is missing")
	}
	if err := doc.Snapshot.Verify(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Upgrade rewrites an older document to SchemaVersion. Documents already at
// the current version are returned unchanged.
func Upgrade(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode document: invalid json")
	}
	version := int(gjson.GetBytes(data, "schema_version").Int())
	for version < SchemaVersion {
		step, ok := upgrades[version]
		if !ok {
			return nil, ErrSchemaUnsupported.With("version", strconv.Itoa(version))
		}
		next, err := step(data)
		if err != nil {
			return nil, fmt.Errorf("upgrade document from version %d: %w", version, err)
		}
		data = next
		version++
	}
	if version != SchemaVersion {
		return nil, ErrSchemaUnsupported.With("version", strconv.Itoa(version))
	}
	return data, nil
}

var upgrades = map[int]func([]byte) ([]byte, error){
	1: upgradeV1,
}

// upgradeV1 turns the flat willpower dots into a current/rating track and
// adds empty experience.
func upgradeV1(data []byte) ([]byte, error) {
	willpower := gjson.GetBytes(data, "snapshot.willpower")
	var err error
	if willpower.Type == gjson.Number {
		dots := willpower.Int()
		data, err = sjson.SetBytes(data, "snapshot.willpower", map[string]int64{"current": dots, "rating": dots})
		if err != nil {
			return nil, err
		}
	}
	if !gjson.GetBytes(data, "snapshot.experience").Exists() {
		data, err = sjson.SetBytes(data, "snapshot.experience", map[string]int{"total": 0, "spent": 0})
		if err != nil {
			return nil, err
		}
	}
	return sjson.SetBytes(data, "schema_version", 2)
}
