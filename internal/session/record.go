package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sakif/skillsync/internal/model"
)

// SchemaVersion is written with every record. Records carrying any other
// version are treated as absent.
const SchemaVersion = 1

var (
	errUnknownSchema = errors.New("unknown schema version")
	errNotAUser      = errors.New("record does not describe a user")
)

type record struct {
	SchemaVersion int         `json:"schemaVersion"`
	User          *model.User `json:"user"`
}

func encodeRecord(u *model.User) ([]byte, error) {
	data, err := json.Marshal(record{SchemaVersion: SchemaVersion, User: u})
	if err != nil {
		return nil, fmt.Errorf("encoding session record: %w", err)
	}
	return data, nil
}

// decodeRecord accepts the versioned envelope and the older bare user object.
func decodeRecord(data []byte) (*model.User, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}

	var u *model.User
	if raw, ok := probe["schemaVersion"]; ok {
		var version int
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("decoding schema version: %w", err)
		}
		if version != SchemaVersion {
			return nil, fmt.Errorf("%w %d", errUnknownSchema, version)
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding session record: %w", err)
		}
		u = rec.User
	} else {
		u = new(model.User)
		if err := json.Unmarshal(data, u); err != nil {
			return nil, fmt.Errorf("decoding legacy session record: %w", err)
		}
	}

	if u == nil || u.ID == "" || !u.Role.Valid() {
		return nil, errNotAUser
	}
	return u, nil
}
