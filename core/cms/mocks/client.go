package mocks

import (
	"context"

	"mapsync/core/cms"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of cms.Client
type Client struct {
	mock.Mock
}

func (m *Client) Collections(ctx context.Context, siteID string) ([]cms.Collection, error) {
	args := m.Called(ctx, siteID)
	if cols, ok := args.Get(0).([]cms.Collection); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Items(ctx context.Context, collectionID string) ([]cms.Item, error) {
	args := m.Called(ctx, collectionID)
	if items, ok := args.Get(0).([]cms.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateItem(ctx context.Context, collectionID string, fields any) (*cms.Item, error) {
	args := m.Called(ctx, collectionID, fields)
	if item, ok := args.Get(0).(*cms.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateItem(ctx context.Context, collectionID, itemID string, fields any) (*cms.Item, error) {
	args := m.Called(ctx, collectionID, itemID, fields)
	if item, ok := args.Get(0).(*cms.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) DeleteItem(ctx context.Context, collectionID, itemID string) error {
	args := m.Called(ctx, collectionID, itemID)
	return args.Error(0)
}

func (m *Client) PublishItems(ctx context.Context, collectionID string, itemIDs []string) error {
	args := m.Called(ctx, collectionID, itemIDs)
	return args.Error(0)
}
