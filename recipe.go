package larder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSON member names of the recipe object.
const (
	keyID              = "id"
	keyTitle           = "title"
	keySourceURL       = "sourceUrl"
	keyImageURL        = "imageUrl"
	keyMealTypes       = "mealTypes"
	keyIngredients     = "ingredients"
	keySteps           = "steps"
	keyDurationMinutes = "durationMinutes"
	keyRecipes         = "recipes"
)

// recipeKeys lists the modelled members in the order new members are appended.
var recipeKeys = []string{
	keyID, keyTitle, keySourceURL, keyImageURL,
	keyMealTypes, keyIngredients, keySteps, keyDurationMinutes,
}

// Recipe represents a single recipe of a dataset.
//
// A Recipe decoded from JSON remembers all members of the source object in
// document order, so encoding it again only changes the modelled fields.
type Recipe struct {
	ID              string
	Title           string
	SourceURL       string
	ImageURL        string
	MealTypes       []string
	Ingredients     []string
	Steps           []string // nil when the source has no steps
	DurationMinutes float64  // zero when unknown

	members []member
}

// member is a raw JSON object member.
// Known is set when the value was decoded into a typed field.
type member struct {
	key   string
	raw   json.RawMessage
	known bool
}

// UnmarshalJSON decodes a recipe object, keeping unknown members verbatim.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	members, err := decodeObject(data)
	if err != nil {
		return err
	}
	*r = Recipe{}
	for i := range members {
		members[i].known = r.decodeMember(members[i].key, members[i].raw)
	}
	r.members = members
	return nil
}

// decodeMember stores raw into the typed field named by key.
// Returns false for unknown keys, nulls and values of the wrong JSON type.
func (r *Recipe) decodeMember(key string, raw json.RawMessage) bool {
	if isNull(raw) {
		return false
	}
	switch key {
	case keyID:
		return decodeInto(raw, &r.ID)
	case keyTitle:
		return decodeInto(raw, &r.Title)
	case keySourceURL:
		return decodeInto(raw, &r.SourceURL)
	case keyImageURL:
		return decodeInto(raw, &r.ImageURL)
	case keyMealTypes:
		return decodeInto(raw, &r.MealTypes)
	case keyIngredients:
		return decodeInto(raw, &r.Ingredients)
	case keySteps:
		return decodeInto(raw, &r.Steps)
	case keyDurationMinutes:
		return decodeInto(raw, &r.DurationMinutes)
	}
	return false
}

// decodeInto sets *dst only when raw decodes cleanly, so a partly
// decoded value never replaces the raw member on output.
func decodeInto[T any](raw json.RawMessage, dst *T) bool {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// value returns the typed value for a modelled key.
func (r *Recipe) value(key string) any {
	switch key {
	case keyID:
		return r.ID
	case keyTitle:
		return r.Title
	case keySourceURL:
		return r.SourceURL
	case keyImageURL:
		return r.ImageURL
	case keyMealTypes:
		return r.MealTypes
	case keyIngredients:
		return r.Ingredients
	case keySteps:
		return r.Steps
	case keyDurationMinutes:
		return r.DurationMinutes
	}
	return nil
}

// isZero reports whether the typed value for key is unset.
func (r *Recipe) isZero(key string) bool {
	switch key {
	case keyID:
		return r.ID == ""
	case keyTitle:
		return r.Title == ""
	case keySourceURL:
		return r.SourceURL == ""
	case keyImageURL:
		return r.ImageURL == ""
	case keyMealTypes:
		return r.MealTypes == nil
	case keyIngredients:
		return r.Ingredients == nil
	case keySteps:
		return r.Steps == nil
	case keyDurationMinutes:
		return r.DurationMinutes == 0
	}
	return true
}

// MarshalJSON encodes the recipe, preserving the source member order.
func (r *Recipe) MarshalJSON() ([]byte, error) {
	var w objectWriter
	seen := make(map[string]bool, len(r.members))
	for _, m := range r.members {
		seen[m.key] = true
		if isRecipeKey(m.key) && (m.known || !r.isZero(m.key)) {
			if err := w.value(m.key, r.value(m.key)); err != nil {
				return nil, err
			}
			continue
		}
		w.raw(m.key, m.raw)
	}
	for _, key := range recipeKeys {
		if seen[key] || r.isZero(key) {
			continue
		}
		if err := w.value(key, r.value(key)); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

func isRecipeKey(key string) bool {
	for _, k := range recipeKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Collection is a recipe dataset: a JSON object with a "recipes" array.
// Other top-level members (such as "meta") are preserved on encode.
type Collection struct {
	Recipes []*Recipe

	members []member
}

// MarshalJSON encodes the collection, preserving the source member order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	recipes := c.Recipes
	if recipes == nil {
		recipes = []*Recipe{}
	}

	var w objectWriter
	wrote := false
	for _, m := range c.members {
		if m.key == keyRecipes {
			if err := w.value(keyRecipes, recipes); err != nil {
				return nil, err
			}
			wrote = true
			continue
		}
		w.raw(m.key, m.raw)
	}
	if !wrote {
		if err := w.value(keyRecipes, recipes); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// ParseCollection decodes and validates the shape of a recipe dataset.
// It fails fast with a *ValidationError when the top level is not an object,
// the recipes member is missing or not an array, or an element is not an object.
func ParseCollection(data []byte) (*Collection, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, &ValidationError{Kind: ValidationNotObject, Index: -1, Err: err}
	}

	var raw json.RawMessage
	found := false
	for _, m := range members {
		if m.key == keyRecipes {
			raw, found = m.raw, true
		}
	}
	if !found {
		return nil, &ValidationError{Kind: ValidationMissingRecipes, Index: -1}
	}

	var elems []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &elems) != nil {
		return nil, &ValidationError{Kind: ValidationRecipesNotArray, Index: -1}
	}

	c := &Collection{
		Recipes: make([]*Recipe, 0, len(elems)),
		members: members,
	}
	for i, elem := range elems {
		r := &Recipe{}
		if err := r.UnmarshalJSON(elem); err != nil {
			return nil, &ValidationError{Kind: ValidationRecipeNotObject, Index: i, Err: err}
		}
		c.Recipes = append(c.Recipes, r)
	}
	return c, nil
}

var errNotObject = errors.New("not a JSON object")

// decodeObject splits a JSON object into its members in document order.
// Duplicate keys keep their first position and their last value.
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var members []member
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if i, ok := index[key]; ok {
			members[i].raw = raw
			continue
		}
		index[key] = len(members)
		members = append(members, member{key: key, raw: raw})
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return members, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// objectWriter builds a compact JSON object member by member.
type objectWriter struct {
	buf bytes.Buffer
	n   int
}

func (w *objectWriter) raw(key string, raw json.RawMessage) {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	k, _ := marshalValue(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
}

func (w *objectWriter) value(key string, v any) error {
	b, err := marshalValue(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	w.raw(key, b)
	return nil
}

func (w *objectWriter) bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes()
}

// marshalValue encodes v without escaping HTML characters.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeCollection renders the collection as indented JSON with a trailing newline.
func EncodeCollection(c *Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
