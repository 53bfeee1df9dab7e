package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"fastfeast_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const foodItemsIndex = "food_items"

// FoodIndex indexe et recherche les plats dans Elasticsearch.
// Client nil = index désactivé (les appelants basculent sur le store).
type FoodIndex struct {
	Client *elasticsearch.Client
}

func NewFoodIndex(client *elasticsearch.Client) *FoodIndex {
	return &FoodIndex{Client: client}
}

// Enabled indique si l'index est utilisable.
func (fi *FoodIndex) Enabled() bool {
	return fi != nil && fi.Client != nil
}

// IndexFoodItem indexe un plat. Appelé au seed ; une erreur d'indexation ne
// bloque jamais le démarrage, elle est seulement journalisée.
func (fi *FoodIndex) IndexFoodItem(ctx context.Context, f models.FoodItem) {
	if !fi.Enabled() {
		return
	}

	data, _ := json.Marshal(f)
	req := esapi.IndexRequest{
		Index:      foodItemsIndex,
		DocumentID: f.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, fi.Client)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", f.Name, res.String())
	}
}

// Search fait une multi_match sur nom, description, catégorie et ingrédients.
func (fi *FoodIndex) Search(ctx context.Context, query string) ([]models.FoodItem, error) {
	if !fi.Enabled() {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "category", "ingredients"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{foodItemsIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, fi.Client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("index non trouvé ou vide")
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.FoodItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	results := make([]models.FoodItem, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
