package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

const AuditLogsCollection = "auditlogs"

type AuditMongoRepository struct {
	coll *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Database) *AuditMongoRepository {
	return &AuditMongoRepository{coll: db.Collection(AuditLogsCollection)}
}

func (r *AuditMongoRepository) WriteAuditLog(ctx context.Context, entry *models.AuditLog) error {
	entry.ID = uuid.NewString()
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *AuditMongoRepository) ListAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	filter := bson.M{}
	if q.Action != "" {
		filter["action"] = q.Action
	}
	if q.Entity != "" {
		filter["entity"] = q.Entity
	}

	created := bson.M{}
	if !q.From.IsZero() {
		created["$gte"] = q.From
	}
	if !q.To.IsZero() {
		created["$lt"] = q.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(q.Offset))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	logs := make([]models.AuditLog, 0)
	if err := cur.All(ctx, &logs); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ audit.Store = (*AuditMongoRepository)(nil)
