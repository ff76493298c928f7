package storage

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// downgradeToV1 rewrites a current document into the version 1 layout.
func downgradeToV1(data []byte) ([]byte, error) {
	rating := gjson.GetBytes(data, "snapshot.willpower.rating").Int()
	data, err := sjson.SetBytes(data, "snapshot.willpower", rating)
	if err != nil {
		return nil, err
	}
	data, err = sjson.DeleteBytes(data, "snapshot.experience")
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(data, "schema_version", 1)
}
