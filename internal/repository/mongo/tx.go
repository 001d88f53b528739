package mongo

import (
	"context"

	"pcfit/routines-service/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTxManager implements repository.TxManager on top of MongoDB
// client sessions. The callback receives a session-bound context, so all
// repository calls made with it join the same transaction.
type mongoTxManager struct {
	client *mongo.Client
}

// NewMongoTxManager creates a TxManager backed by the given client.
func NewMongoTxManager(client *mongo.Client) repository.TxManager {
	return &mongoTxManager{client: client}
}

func (m *mongoTxManager) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
