package application

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The detail value objects are stored as JSONB columns so that absent
// fields stay absent instead of degrading to zero values.

func (d OfferDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *OfferDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func (d RejectionDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *RejectionDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	}
	return fmt.Errorf("unsupported jsonb source type %T", value)
}
