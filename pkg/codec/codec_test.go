package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/waymark/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleRegistry = domain.MustRegistry("article")

type article struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Rating    float64  `json:"rating"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
	EditedAt  *string  `json:"edited_at"`
}

func (article) Transitions() *domain.Registry { return articleRegistry }

func sample() article {
	return article{ID: 1, Title: "Hello", Rating: 4.5, Published: false, Tags: []string{"go"}}
}

func links(ls ...domain.Link) Hook {
	return func(doc Document) error {
		for _, l := range ls {
			if err := doc.AddLink(l); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestJSON_BaseFieldsOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONSerializer{}.Serialize(&buf, sample(), Options{}, nil))
	assert.Equal(t,
		`{"id":1,"title":"Hello","rating":4.5,"published":false,"tags":["go"],"edited_at":null}`+"\n",
		buf.String())
}

func TestJSON_LinksAppendedAfterFields(t *testing.T) {
	var buf bytes.Buffer
	hook := func(doc Document) error {
		if err := links(domain.Link{Rel: "publish", Href: "http://x/articles/1/publish", Method: "POST"})(doc); err != nil {
			return err
		}
		return doc.(StateLister).SetFollowingStates([]string{"publish"})
	}
	require.NoError(t, JSONSerializer{}.Serialize(&buf, sample(), Options{}, hook))
	assert.Equal(t,
		`{"id":1,"title":"Hello","rating":4.5,"published":false,"tags":["go"],"edited_at":null,`+
			`"link":[{"rel":"publish","href":"http://x/articles/1/publish","method":"POST"}],`+
			`"following_states":["publish"]}`+"\n",
		buf.String())
}

type linked struct {
	Link string `json:"link"`
}

func (linked) Transitions() *domain.Registry { return nil }

func TestJSON_LinksNeverOverwriteFields(t *testing.T) {
	var buf bytes.Buffer
	err := JSONSerializer{}.Serialize(&buf, linked{Link: "mine"}, Options{}, links(domain.Link{Rel: "self", Href: "/"}))
	assert.ErrorIs(t, err, ErrFieldCollision)
	assert.Empty(t, buf.String())
}

type underscoreLinked struct {
	Link string `json:"_link"`
}

func (underscoreLinked) Transitions() *domain.Registry { return nil }

type capitalLinked struct {
	Link string `json:"Link"`
}

func (capitalLinked) Transitions() *domain.Registry { return nil }

func TestXML_LinksNeverShareFieldElements(t *testing.T) {
	tests := []struct {
		name string
		res  domain.Resource
	}{
		{"link", linked{Link: "mine"}},
		{"_link", underscoreLinked{Link: "mine"}},
		{"Link", capitalLinked{Link: "mine"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := XMLSerializer{}.Serialize(&buf, tt.res, Options{}, links(domain.Link{Rel: "self", Href: "/"}))
			assert.ErrorIs(t, err, ErrFieldCollision)
			assert.ErrorContains(t, err, tt.name)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, XMLSerializer{}.Serialize(&buf, linked{Link: "mine"}, Options{}, nil))
	assert.Contains(t, buf.String(), `<link>mine</link>`, "plain output keeps the field")
}

type bigOrder struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
}

func (bigOrder) Transitions() *domain.Registry { return nil }

func TestSerializers_KeepLargeIntegersExact(t *testing.T) {
	order := bigOrder{ID: 9007199254740993, Amount: 12.5}

	var js bytes.Buffer
	require.NoError(t, JSONSerializer{}.Serialize(&js, order, Options{}, nil))
	assert.Equal(t, `{"id":9007199254740993,"amount":12.5}`+"\n", js.String())

	var x bytes.Buffer
	require.NoError(t, XMLSerializer{}.Serialize(&x, order, Options{Root: "order"}, nil))
	assert.Contains(t, x.String(), `<id type="integer">9007199254740993</id><amount type="float">12.5</amount>`)

	var y bytes.Buffer
	require.NoError(t, YAMLSerializer{}.Serialize(&y, order, Options{}, nil))
	assert.Equal(t, "id: 9007199254740993\namount: 12.5\n", y.String())
}

func TestJSON_HookErrorAborts(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	err := JSONSerializer{}.Serialize(&buf, sample(), Options{}, func(Document) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, buf.String())
}

func TestXML_TypesAndLinks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XMLSerializer{}.Serialize(&buf, sample(), Options{}, links(
		domain.Link{Rel: "publish", Href: "/articles/1/publish", Method: "POST"},
		domain.Link{Rel: "self", Href: "/articles/1"},
	)))

	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<article>` +
		`<id type="integer">1</id>` +
		`<title>Hello</title>` +
		`<rating type="float">4.5</rating>` +
		`<published type="boolean">false</published>` +
		`<tags type="array"><item>go</item></tags>` +
		`<edited-at nil="true"></edited-at>` +
		`<link rel="publish" href="/articles/1/publish" method="POST"></link>` +
		`<link rel="self" href="/articles/1"></link>` +
		`</article>`
	assert.Equal(t, want, buf.String())
}

func TestXML_SkipTypesAndRoot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XMLSerializer{}.Serialize(&buf, sample(), Options{SkipTypes: true, Root: "post"}, nil))

	out := buf.String()
	assert.Contains(t, out, `<post><id>1</id>`)
	assert.NotContains(t, out, `type=`)
	assert.Contains(t, out, `<edited-at nil="true"></edited-at>`, "nil markers are not type hints")
}

func TestYAML_KeepsFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLSerializer{}.Serialize(&buf, sample(), Options{}, links(
		domain.Link{Rel: "self", Href: "/articles/1"},
	)))

	want := "id: 1\n" +
		"title: Hello\n" +
		"rating: 4.5\n" +
		"published: false\n" +
		"tags:\n" +
		"  - go\n" +
		"edited_at: null\n" +
		"link:\n" +
		"  - rel: self\n" +
		"    href: /articles/1\n"
	assert.Equal(t, want, buf.String())
}

func TestElementName(t *testing.T) {
	assert.Equal(t, "edited-at", elementName("edited_at"))
	assert.Equal(t, "id", elementName("_id"))
	assert.Equal(t, "field", elementName("42"))
	assert.Equal(t, "a2", elementName("a2"))
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":                 JSON,
		"xml":                  XML,
		"yml":                  YAML,
		"application/hal+json": JSON,
		"text/xml":             XML,
		"application/x-yaml":   YAML,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("text/csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNegotiate(t *testing.T) {
	f, ok := Negotiate("", JSON)
	assert.True(t, ok)
	assert.Equal(t, JSON, f)

	f, ok = Negotiate("*/*", XML)
	assert.True(t, ok)
	assert.Equal(t, XML, f)

	f, ok = Negotiate("application/json;q=0.5, application/xml", JSON)
	assert.True(t, ok)
	assert.Equal(t, XML, f)

	_, ok = Negotiate("image/png", JSON)
	assert.False(t, ok)
}
