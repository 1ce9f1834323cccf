// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// SearchIndex mirrors the catalog into Elasticsearch for keyword lookup.
type SearchIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewSearchIndex(es *elasticsearch.Client, index string) *SearchIndex {
	return &SearchIndex{es: es, index: index}
}

type searchDoc struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Status       string   `json:"status"`
	Location     string   `json:"location"`
	Investor     string   `json:"investor"`
	Manager      string   `json:"manager"`
	Capacity     string   `json:"capacity"`
	Stakeholders []string `json:"stakeholders"`
	Progress     int      `json:"progress"`
}

func toSearchDoc(p models.Project) searchDoc {
	names := make([]string, 0, len(p.Stakeholders))
	for _, s := range p.Stakeholders {
		names = append(names, s.Name)
	}
	return searchDoc{
		ID:           p.ID,
		Name:         p.Name,
		Category:     string(p.Type),
		Status:       string(p.Status),
		Location:     p.Location,
		Investor:     p.Investor.Name,
		Manager:      p.Manager,
		Capacity:     p.Capacity,
		Stakeholders: names,
		Progress:     p.Progress,
	}
}

// bulkBody renders the NDJSON payload of an index bulk request.
func bulkBody(index string, projects []models.Project) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range projects {
		meta := map[string]interface{}{"index": map[string]string{"_index": index, "_id": p.ID}}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		if err := enc.Encode(toSearchDoc(p)); err != nil {
			return nil, err
		}
	}
	return &buf, nil
}

// IndexCatalog upserts every project in one bulk request.
func (s *SearchIndex) IndexCatalog(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}
	body, err := bulkBody(s.index, projects)
	if err != nil {
		return errors.NewSearchIndexFailedError(s.index, err)
	}

	req := esapi.BulkRequest{Body: body, Refresh: "true"}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return errors.NewSearchIndexFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewSearchIndexFailedError(s.index, fmt.Errorf("bulk status %s", res.Status()))
	}

	var out struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return errors.NewSearchIndexFailedError(s.index, err)
	}
	if out.Errors {
		return errors.NewSearchIndexFailedError(s.index, fmt.Errorf("bulk response reported item errors"))
	}
	return nil
}

func (s *SearchIndex) IndexProject(ctx context.Context, p models.Project) error {
	doc, err := json.Marshal(toSearchDoc(p))
	if err != nil {
		return errors.NewSearchIndexFailedError(s.index, err)
	}
	req := esapi.IndexRequest{Index: s.index, DocumentID: p.ID, Body: bytes.NewReader(doc)}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return errors.NewSearchIndexFailedError(s.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.NewSearchIndexFailedError(s.index, fmt.Errorf("index status %s", res.Status()))
	}
	return nil
}

func buildSearchQuery(keywords string, category models.ProjectCategory) map[string]interface{} {
	boolQuery := map[string]interface{}{}
	if keywords != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  keywords,
					"fields": []string{"name^3", "investor^2", "location", "stakeholders", "manager"},
					"type":   "best_fields",
				},
			},
		}
	} else {
		boolQuery["must"] = []interface{}{map[string]interface{}{"match_all": map[string]interface{}{}}}
	}
	if category != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"category.keyword": string(category)}},
		}
	}
	return map[string]interface{}{"query": map[string]interface{}{"bool": boolQuery}}
}

// Search returns matching project ids in relevance order.
func (s *SearchIndex) Search(ctx context.Context, keywords string, category models.ProjectCategory, size int) ([]string, error) {
	body, err := json.Marshal(buildSearchQuery(keywords, category))
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(s.index, err)
	}
	if size <= 0 {
		size = 20
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(s.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.NewSearchIndexFailedError(s.index, fmt.Errorf("search status %s", res.Status()))
	}

	var out struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.NewSearchIndexFailedError(s.index, err)
	}

	ids := make([]string, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
