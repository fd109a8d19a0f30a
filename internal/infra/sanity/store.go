package sanity

import (
	"context"

	"ecadmin/internal/domain/model"
	repo "ecadmin/internal/repository"
)

// DocumentStore はGROQクエリ1本とレコード型を結びつけたもの。
type DocumentStore[T any] struct {
	client *Client
	query  string
}

func NewDocumentStore[T any](client *Client, query string) *DocumentStore[T] {
	return &DocumentStore[T]{client: client, query: query}
}

func NewOrderStore(client *Client) repo.DocumentRepository[model.Order] {
	return NewDocumentStore[model.Order](client, OrderQuery)
}

func NewRentalOrderStore(client *Client) repo.DocumentRepository[model.RentalOrder] {
	return NewDocumentStore[model.RentalOrder](client, RentalOrderQuery)
}

func (s *DocumentStore[T]) FetchAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.client.Query(ctx, s.query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (s *DocumentStore[T]) PatchStatus(ctx context.Context, id string, status string) error {
	return s.client.Patch(ctx, id, map[string]any{"status": status})
}

func (s *DocumentStore[T]) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, id)
}
