package scope

import (
	"bytes"
	"encoding/json"
)

// CategoryRef is a tolerant reference to a category. The backend serializes
// a product's category inconsistently: sometimes a bare id string, sometimes
// a name, sometimes an embedded object. All variants normalize through Key.
type CategoryRef struct {
	// token holds the value when the reference was a bare string or number
	token string
	// object fields when the reference was embedded
	mongoID string
	id      string
	slug    string
	name    string
}

// CategoryID builds a reference from a known category id. Used by tests and
// callers constructing products locally.
func CategoryID(id string) CategoryRef {
	return CategoryRef{token: id}
}

// UnmarshalJSON accepts a string, a number, or an embedded category object.
// Anything else normalizes to the empty reference rather than failing.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	*r = CategoryRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			MongoID json.RawMessage `json:"_id"`
			ID      json.RawMessage `json:"id"`
			Slug    json.RawMessage `json:"slug"`
			Name    json.RawMessage `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		r.mongoID = scalarToken(obj.MongoID)
		r.id = scalarToken(obj.ID)
		r.slug = scalarToken(obj.Slug)
		r.name = scalarToken(obj.Name)
		return nil
	}

	r.token = scalarToken(data)
	return nil
}

// scalarToken extracts a usable identifier from a raw JSON scalar: strings
// unquote, numbers keep their literal form, everything else is empty.
func scalarToken(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return ""
	}
	return n.String()
}

// MarshalJSON writes the normalized key, which is what the backend expects
// on submission.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Key())
}

// Key returns the normalized category identifier: the bare token when the
// reference was a plain value, otherwise the first non-empty of _id, id,
// slug, name. Empty when nothing is set.
func (r CategoryRef) Key() string {
	if r.token != "" {
		return r.token
	}
	for _, v := range []string{r.mongoID, r.id, r.slug, r.name} {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsZero reports whether the reference carries no identifier at all.
func (r CategoryRef) IsZero() bool {
	return r.Key() == ""
}
