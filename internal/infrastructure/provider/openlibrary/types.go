package openlibrary

import (
	"encoding/json"
	"path"
)

// searchResponse GET /search.json 的响应
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"` // /works/OL45804W
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AuthorName       []string `json:"author_name"`
	Publisher        []string `json:"publisher"`
	PublishDate      []string `json:"publish_date"`
	FirstPublishYear int      `json:"first_publish_year"`
	Subject          []string `json:"subject"`
	CoverEditionKey  string   `json:"cover_edition_key"`
	EditionKey       []string `json:"edition_key"`
}

// externalID 入库时使用的版本ID（/books/{id}.json）
// 优先封面版本，其次第一个版本，最后退回作品key
func (d searchDoc) externalID() string {
	switch {
	case d.CoverEditionKey != "":
		return d.CoverEditionKey
	case len(d.EditionKey) > 0:
		return d.EditionKey[0]
	default:
		return path.Base(d.Key)
	}
}

// edition GET /books/{id}.json 的响应
type edition struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	PublishDate string      `json:"publish_date"`
	Publishers  []string    `json:"publishers"`
	Description textValue   `json:"description"`
	Authors     []authorRef `json:"authors"`
	Works       []keyRef    `json:"works"`
}

// authorRef 两种形态：{"key": "/authors/OL1A"} 或 {"author": {"key": "/authors/OL1A"}}
type authorRef struct {
	Key    string `json:"key"`
	Author keyRef `json:"author"`
}

func (a authorRef) key() string {
	if a.Key != "" {
		return a.Key
	}
	return a.Author.Key
}

type keyRef struct {
	Key string `json:"key"`
}

type author struct {
	Name string `json:"name"`
}

type work struct {
	Subjects []string `json:"subjects"`
}

// textValue OpenLibrary的文本字段可能是字符串，也可能是 {"type": "/type/text", "value": "..."}
type textValue string

func (t *textValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textValue(s)
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = textValue(obj.Value)
	return nil
}
