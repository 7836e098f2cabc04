package search

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const videoMapping = `{
	"mappings": {
		"properties": {
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"owner_id":     {"type": "keyword"},
			"is_published": {"type": "boolean"},
			"created_at":   {"type": "date"}
		}
	}
}`

// maxHits bounds how many matches a text query may feed into pagination.
const maxHits = 1000

type VideoDoc struct {
	ID          string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// VideoIndex is the full-text index over video titles and descriptions.
type VideoIndex interface {
	Index(ctx context.Context, doc VideoDoc) error
	Delete(ctx context.Context, id string) error
	SearchIDs(ctx context.Context, query string) ([]string, error)
}

type ElasticIndex struct {
	client *elastic.Client
	index  string
}

func NewElasticIndex(ctx context.Context, addr, index string) (*ElasticIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(addr),
		elastic.SetSniff(false),
		elastic.SetHealthcheckInterval(30*time.Second),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create elastic client failed")
	}
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "check index %s failed", index)
	}
	if !exists {
		if _, err = client.CreateIndex(index).BodyString(videoMapping).Do(ctx); err != nil {
			return nil, errors.Wrapf(err, "create index %s failed", index)
		}
	}
	hlog.Info("Connect Elasticsearch Success")
	return &ElasticIndex{client: client, index: index}, nil
}

func (e *ElasticIndex) Index(ctx context.Context, doc VideoDoc) error {
	_, err := e.client.Index().Index(e.index).Id(doc.ID).BodyJson(doc).Do(ctx)
	return errors.Wrapf(err, "index video %s failed", doc.ID)
}

func (e *ElasticIndex) Delete(ctx context.Context, id string) error {
	_, err := e.client.Delete().Index(e.index).Id(id).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return errors.Wrapf(err, "delete video %s from index failed", id)
	}
	return nil
}

// SearchIDs returns ids of published videos matching query, best match first.
func (e *ElasticIndex) SearchIDs(ctx context.Context, query string) ([]string, error) {
	q := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(query, "title^2", "description")).
		Filter(elastic.NewTermQuery("is_published", true))
	res, err := e.client.Search(e.index).Query(q).Size(maxHits).FetchSource(false).Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "search videos failed")
	}
	ids := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		ids = append(ids, hit.Id)
	}
	return ids, nil
}
