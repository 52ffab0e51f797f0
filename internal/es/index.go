package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"shopper-api/internal/models"
)

// IndexProduct stores a catalog entry under its numeric id.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("es: marshal product: %w", err)
	}

	res, err := client.Index(
		ProductIndex,
		bytes.NewReader(data),
		client.Index.WithDocumentID(strconv.Itoa(product.ID)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: index product %d: %w", product.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index product %d: %s", product.ID, res.Status())
	}
	return nil
}

// DeleteProduct removes a catalog entry. Missing documents are not an error,
// delete mirrors the store's silent-success semantics.
func DeleteProduct(ctx context.Context, client *elasticsearch.Client, id int) error {
	res, err := client.Delete(
		ProductIndex,
		strconv.Itoa(id),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete product %d: %s", id, res.Status())
	}
	return nil
}
