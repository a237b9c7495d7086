package jsonmap_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/reoring/jsonmap"
)

type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Spanish Language = "es"
)

var languageFunc = jsonmap.StringEnum(English, French, Spanish)

type URLItem struct {
	DisplayURL  string
	ExpandedURL *url.URL
	URL         *url.URL
	Indices     []int
}

func (u *URLItem) MapJSON(m *jsonmap.Mapper) error {
	k, err := m.Keyed()
	if err != nil {
		return err
	}
	if u.DisplayURL, err = k.String(jsonmap.KeyPath{"displayURL"}); err != nil {
		return err
	}
	if u.ExpandedURL, err = k.URL(jsonmap.KeyPath{"expandedURL"}); err != nil {
		return err
	}
	if u.URL, err = k.URL(jsonmap.KeyPath{"url"}); err != nil {
		return err
	}
	u.Indices, err = k.Ints(jsonmap.KeyPath{"indices"})
	return err
}

type User struct {
	ID             int64
	IDString       string
	Name           string
	CreatedAt      time.Time
	URL            *url.URL
	DefaultProfile bool
	FollowersCount int
	Description    string
	URLItems       []URLItem
}

func (u *User) MapJSON(m *jsonmap.Mapper) error {
	k, err := m.Keyed()
	if err != nil {
		return err
	}
	if u.ID, err = k.Int64(jsonmap.KeyPath{"id"}); err != nil {
		return err
	}
	if u.IDString, err = k.String(jsonmap.KeyPath{"id_str"}); err != nil {
		return err
	}
	if u.Name, err = k.String(jsonmap.KeyPath{"name"}); err != nil {
		return err
	}
	if u.CreatedAt, err = k.Time(jsonmap.KeyPath{"createdAt"}); err != nil {
		return err
	}
	if v := jsonmap.OptionalField(k, jsonmap.KeyPath{"url"}, jsonmap.URL); v != nil {
		u.URL = *v
	}
	if u.DefaultProfile, err = k.Bool(jsonmap.KeyPath{"defaultProfile"}); err != nil {
		return err
	}
	if u.FollowersCount, err = k.Int(jsonmap.KeyPath{"followersCount"}); err != nil {
		return err
	}
	if u.Description, err = k.String(jsonmap.KeyPath{"description"}); err != nil {
		return err
	}
	u.URLItems, err = jsonmap.Field(k, jsonmap.KeyPath{"entities", "description", "urls"}, jsonmap.ArrayOf(jsonmap.Model[URLItem]()))
	return err
}

type Tweet struct {
	User          User
	Text          string
	ScreenName    string
	CreatedAt     time.Time
	Favorited     bool
	Language      *Language
	URLItems      []URLItem
	ReplyToStatus *int64
}

func (t *Tweet) MapJSON(m *jsonmap.Mapper) error {
	k, err := m.Keyed()
	if err != nil {
		return err
	}
	t.Language = jsonmap.OptionalField(k, jsonmap.KeyPath{"lang"}, languageFunc)
	if t.User, err = jsonmap.Field(k, jsonmap.KeyPath{"user"}, jsonmap.Model[User]()); err != nil {
		return err
	}
	if t.ScreenName, err = k.String(jsonmap.KeyPath{"user", "screen_name"}); err != nil {
		return err
	}
	if t.Text, err = k.String(jsonmap.KeyPath{"text"}); err != nil {
		return err
	}
	if t.CreatedAt, err = k.Time(jsonmap.KeyPath{"createdAt"}); err != nil {
		return err
	}
	if t.Favorited, err = k.Bool(jsonmap.KeyPath{"favorited"}); err != nil {
		return err
	}
	if t.URLItems, err = jsonmap.Field(k, jsonmap.ParseKeyPath("entities.urls"), jsonmap.ArrayOf(jsonmap.Model[URLItem]())); err != nil {
		return err
	}
	t.ReplyToStatus = jsonmap.OptionalField(k, jsonmap.KeyPath{"in_reply_to_status_id"}, jsonmap.Int64)
	return nil
}

func TestTweets_DecodeFile(t *testing.T) {
	a := jsonmap.New(jsonmap.WithKeyStrategy(jsonmap.KeysSnakeCase))
	tweets, err := jsonmap.DecodeFile(a, "testdata/tweets.json", jsonmap.ArrayOf(jsonmap.Model[Tweet]()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(tweets))
	}

	first := tweets[0]
	if first.ScreenName != "devrel" || first.User.ID != 2244994945 || first.User.FollowersCount != 143916 {
		t.Fatalf("unexpected user fields: %+v", first.User)
	}
	if first.Language == nil || *first.Language != English {
		t.Fatalf("expected english, got %v", first.Language)
	}
	if first.ReplyToStatus != nil {
		t.Fatalf("expected null reply id to be absent, got %d", *first.ReplyToStatus)
	}
	if len(first.URLItems) != 1 || first.URLItems[0].ExpandedURL.Host != "example.com" {
		t.Fatalf("unexpected url items: %+v", first.URLItems)
	}
	if first.URLItems[0].Indices[1] != 33 {
		t.Fatalf("unexpected indices: %v", first.URLItems[0].Indices)
	}
	if !first.CreatedAt.Equal(time.Date(2015, 2, 12, 15, 26, 30, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", first.CreatedAt)
	}
	if first.User.URL == nil || first.User.URL.String() != "https://example.com" {
		t.Fatalf("unexpected user url: %v", first.User.URL)
	}

	second := tweets[1]
	if second.ReplyToStatus == nil || *second.ReplyToStatus != 566282049128816640 {
		t.Fatalf("expected exact reply id, got %v", second.ReplyToStatus)
	}
	if second.User.URL != nil {
		t.Fatalf("expected missing user url, got %v", second.User.URL)
	}
	if second.CreatedAt.Nanosecond() != 250_000_000 {
		t.Fatalf("expected fractional seconds, got %v", second.CreatedAt)
	}
}

func TestTweets_DecodeMany(t *testing.T) {
	a := jsonmap.New(jsonmap.WithKeyStrategy(jsonmap.KeysSnakeCase))
	item := `{"display_url":"d","expanded_url":"https://e.example","url":"https://t.co/x","indices":[1,2]}`

	one, err := jsonmap.DecodeMany(a, []byte(item), jsonmap.Model[URLItem]())
	if err != nil || len(one) != 1 {
		t.Fatalf("object root: got %d items err=%v", len(one), err)
	}
	many, err := jsonmap.DecodeMany(a, []byte("["+item+","+item+"]"), jsonmap.Model[URLItem]())
	if err != nil || len(many) != 2 {
		t.Fatalf("array root: got %d items err=%v", len(many), err)
	}
	if _, err := jsonmap.DecodeMany(a, []byte(`"x"`), jsonmap.Model[URLItem]()); !errors.Is(err, jsonmap.ErrInvalidType) {
		t.Fatalf("expected InvalidType for a scalar root, got %v", err)
	}
}

func TestArray_AtomicFailure(t *testing.T) {
	a := jsonmap.New(jsonmap.WithKeyStrategy(jsonmap.KeysSnakeCase))
	doc := `{"urls":[
		{"display_url":"a","expanded_url":"https://a.example","url":"https://t.co/a","indices":[]},
		{"display_url":"b","expanded_url":42,"url":"https://t.co/b","indices":[]},
		{"display_url":"c","expanded_url":"https://c.example","url":"https://t.co/c","indices":[]}
	]}`
	items, err := jsonmap.DecodeString(a, doc, func(m *jsonmap.Mapper) ([]URLItem, error) {
		return jsonmap.ArrayOf(jsonmap.Model[URLItem]())(m.At(jsonmap.KeyPath{"urls"}))
	})
	if items != nil {
		t.Fatalf("expected no partial result, got %d items", len(items))
	}
	de, ok := jsonmap.AsDecodeError(err)
	if !ok || de.Kind != jsonmap.InvalidType {
		t.Fatalf("expected InvalidType, got %v", err)
	}
	if de.Path.String() != "urls[1].expanded_url" {
		t.Fatalf("unexpected path %q", de.Path.String())
	}
}

func TestEnum(t *testing.T) {
	got, err := jsonmap.DecodeString(nil, `"en"`, languageFunc)
	if err != nil || got != English {
		t.Fatalf("got %q err=%v", got, err)
	}
	if _, err := jsonmap.DecodeString(nil, `"de"`, languageFunc); !errors.Is(err, jsonmap.ErrDataCorrupted) {
		t.Fatalf("expected DataCorrupted, got %v", err)
	}
	if _, err := jsonmap.DecodeString(nil, `7`, languageFunc); !errors.Is(err, jsonmap.ErrInvalidType) {
		t.Fatalf("expected InvalidType, got %v", err)
	}

	type Level int8
	levels := jsonmap.IntEnum[Level](1, 2, 3)
	lv, err := jsonmap.DecodeString(nil, `2`, levels)
	if err != nil || lv != 2 {
		t.Fatalf("got %d err=%v", lv, err)
	}
	if _, err := jsonmap.DecodeString(nil, `4`, levels); !errors.Is(err, jsonmap.ErrDataCorrupted) {
		t.Fatalf("expected DataCorrupted, got %v", err)
	}
	if _, err := jsonmap.DecodeString(nil, `300`, levels); !errors.Is(err, jsonmap.ErrDataCorrupted) {
		t.Fatalf("expected overflow to be DataCorrupted, got %v", err)
	}
}

func TestMapOfAndNullElements(t *testing.T) {
	counts, err := jsonmap.DecodeString(nil, `{"a":1,"b":2}`, jsonmap.MapOf(jsonmap.Int))
	if err != nil || counts["a"] != 1 || counts["b"] != 2 {
		t.Fatalf("got %v err=%v", counts, err)
	}
	_, err = jsonmap.DecodeString(nil, `{"a":1,"b":"x"}`, jsonmap.MapOf(jsonmap.Int))
	if de, ok := jsonmap.AsDecodeError(err); !ok || de.Path.String() != "b" {
		t.Fatalf("expected failure at b, got %v", err)
	}

	if _, err := jsonmap.DecodeString(nil, `[1,null,3]`, jsonmap.ArrayOf(jsonmap.Int)); !errors.Is(err, jsonmap.ErrKeyPathMissing) {
		t.Fatalf("expected null element to be missing, got %v", err)
	}
	lenient := jsonmap.New(jsonmap.WithMissingValueStrategy(jsonmap.MissingUseDefaults))
	xs, err := jsonmap.DecodeString(lenient, `[1,null,3]`, jsonmap.ArrayOf(jsonmap.Int))
	if err != nil || len(xs) != 3 || xs[1] != 0 {
		t.Fatalf("got %v err=%v", xs, err)
	}
}

func TestTransformAndTryField(t *testing.T) {
	upper := jsonmap.Transform(jsonmap.String, func(s string) (int, error) {
		if s == "" {
			return 0, errors.New("empty")
		}
		return len(s), nil
	})
	n, err := jsonmap.DecodeString(nil, `"abc"`, upper)
	if err != nil || n != 3 {
		t.Fatalf("got %d err=%v", n, err)
	}
	if _, err := jsonmap.DecodeString(nil, `""`, upper); !errors.Is(err, jsonmap.ErrDataCorrupted) {
		t.Fatalf("expected DataCorrupted, got %v", err)
	}

	_, err = jsonmap.DecodeString(nil, `{"n":"x"}`, func(m *jsonmap.Mapper) (struct{}, error) {
		k, err := m.Keyed()
		if err != nil {
			return struct{}{}, err
		}
		if _, ok := jsonmap.TryField(k, jsonmap.KeyPath{"n"}, jsonmap.Int); ok {
			t.Fatalf("expected TryField to fail")
		}
		if !k.Contains(jsonmap.KeyPath{"n"}) || k.Contains(jsonmap.KeyPath{"m"}) {
			t.Fatalf("unexpected Contains result")
		}
		if keys := k.Keys(); len(keys) != 1 || keys[0] != "n" {
			t.Fatalf("unexpected keys %v", keys)
		}
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
